package circuit

import (
	"math"

	"github.com/pkg/errors"

	"github.com/malinowski-marek/qrng/internal/common/qrngerrors"
)

// BasisGates is the native operation set of the hardware backends: every
// submitted circuit must be expressed in terms of these gates only.
var BasisGates = map[GateName]bool{
	GateRZ: true,
	GateSX: true,
	GateX:  true,
	GateCX: true,
}

// Transpile rewrites a circuit into the hardware basis gate set, preserving
// its logical behavior exactly: the decomposition of each gate is unitarily
// equivalent (up to global phase), so the output domain and the per-qubit
// outcome distribution are unchanged.
//
// The optimization level trades transpilation work for circuit compactness:
//
//	0 - literal gate-by-gate rewrite
//	1 - additionally merge adjacent rz rotations on the same qubit
//	2 - additionally drop rz gates whose merged angle is a multiple of 2π
func Transpile(c *Circuit, optimizationLevel int) (*Circuit, error) {
	if optimizationLevel < 0 || optimizationLevel > 2 {
		return nil, errors.WithStack(&qrngerrors.ErrInvalidArgument{
			Name:    "optimizationLevel",
			Value:   optimizationLevel,
			Message: "must be between 0 and 2",
		})
	}

	out := &Circuit{Qubits: c.Qubits}
	for _, g := range c.Gates {
		switch g.Name {
		case GateH:
			// h = rz(π/2) · sx · rz(π/2), up to global phase
			appendGate(out, Gate{Name: GateRZ, Qubit: g.Qubit, Control: -1, Theta: math.Pi / 2}, optimizationLevel)
			appendGate(out, Gate{Name: GateSX, Qubit: g.Qubit, Control: -1}, optimizationLevel)
			appendGate(out, Gate{Name: GateRZ, Qubit: g.Qubit, Control: -1, Theta: math.Pi / 2}, optimizationLevel)
		default:
			if !BasisGates[g.Name] {
				return nil, errors.WithStack(&qrngerrors.ErrInvalidArgument{
					Name:    "gate",
					Value:   string(g.Name),
					Message: "no decomposition into the hardware basis is known",
				})
			}
			appendGate(out, g, optimizationLevel)
		}
	}
	return out, nil
}

// appendGate appends g, folding it into the previous gate when the
// optimization level allows. Merging only looks at the immediately preceding
// gate and only when it acts on the same single qubit, so gate order across
// qubits is never disturbed.
func appendGate(c *Circuit, g Gate, optimizationLevel int) {
	if optimizationLevel >= 1 && g.Name == GateRZ && len(c.Gates) > 0 {
		last := &c.Gates[len(c.Gates)-1]
		if last.Name == GateRZ && last.Qubit == g.Qubit {
			last.Theta = normalizeAngle(last.Theta + g.Theta)
			if optimizationLevel >= 2 && isZeroAngle(last.Theta) {
				c.Gates = c.Gates[:len(c.Gates)-1]
			}
			return
		}
	}
	if optimizationLevel >= 2 && g.Name == GateRZ && isZeroAngle(g.Theta) {
		return
	}
	c.Gates = append(c.Gates, g)
}

func normalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta
}

func isZeroAngle(theta float64) bool {
	const epsilon = 1e-12
	return theta < epsilon || 2*math.Pi-theta < epsilon
}
