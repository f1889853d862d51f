package circuit

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/malinowski-marek/qrng/internal/common/qrngerrors"
)

type GateName string

const (
	GateH  GateName = "h"
	GateX  GateName = "x"
	GateSX GateName = "sx"
	GateRZ GateName = "rz"
	GateCX GateName = "cx"
)

// Gate is one operation on a circuit.
type Gate struct {
	Name  GateName
	Qubit int
	// Control qubit for cx; -1 for single-qubit gates.
	Control int
	// Rotation angle in radians; only meaningful for rz.
	Theta float64
}

// Circuit is an ordered list of gates over a fixed number of qubits,
// followed by a joint measurement of all qubits. Measurement bitstrings are
// read most-significant bit first: bit i of the outcome corresponds to
// qubit i.
type Circuit struct {
	Qubits int
	Gates  []Gate
}

// NewRandomCircuit builds the fixed-shape random number circuit: every qubit
// starts in |0> and gets a Hadamard, so each measured bit is an independent,
// unbiased coin. The construction is fully deterministic for a given n; only
// the remote execution of it is stochastic.
func NewRandomCircuit(n int) (*Circuit, error) {
	if n < 1 {
		return nil, errors.WithStack(&qrngerrors.ErrInvalidArgument{
			Name:    "qubits",
			Value:   n,
			Message: "at least one qubit is required",
		})
	}
	c := &Circuit{Qubits: n}
	for q := 0; q < n; q++ {
		c.H(q)
	}
	return c, nil
}

func (c *Circuit) H(q int)  { c.Gates = append(c.Gates, Gate{Name: GateH, Qubit: q, Control: -1}) }
func (c *Circuit) X(q int)  { c.Gates = append(c.Gates, Gate{Name: GateX, Qubit: q, Control: -1}) }
func (c *Circuit) SX(q int) { c.Gates = append(c.Gates, Gate{Name: GateSX, Qubit: q, Control: -1}) }

func (c *Circuit) RZ(q int, theta float64) {
	c.Gates = append(c.Gates, Gate{Name: GateRZ, Qubit: q, Control: -1, Theta: theta})
}

func (c *Circuit) CX(control, target int) {
	c.Gates = append(c.Gates, Gate{Name: GateCX, Qubit: target, Control: control})
}

// DomainMax returns the largest value a measurement can decode to, i.e.
// 2^n - 1. Circuits wider than 64 qubits cannot be decoded to a uint64 and
// are rejected before submission by the executor.
func (c *Circuit) DomainMax() uint64 {
	if c.Qubits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(c.Qubits)) - 1
}

// OpCount returns the number of gates in the circuit.
func (c *Circuit) OpCount() int {
	return len(c.Gates)
}

// Depth returns the length of the longest per-qubit gate sequence, counting
// a cx against both of its qubits.
func (c *Circuit) Depth() int {
	depths := make([]int, c.Qubits)
	for _, g := range c.Gates {
		d := depths[g.Qubit] + 1
		if g.Control >= 0 {
			if depths[g.Control]+1 > d {
				d = depths[g.Control] + 1
			}
			depths[g.Control] = d
		}
		depths[g.Qubit] = d
	}
	max := 0
	for _, d := range depths {
		if d > max {
			max = d
		}
	}
	return max
}

// QASM serializes the circuit as OpenQASM 3 text, the request payload the
// service accepts. Classical bit i receives the measurement of qubit i,
// preserving the MSB-first decode convention.
func (c *Circuit) QASM() string {
	var b strings.Builder
	b.WriteString("OPENQASM 3.0;\n")
	b.WriteString("include \"stdgates.inc\";\n")
	fmt.Fprintf(&b, "qubit[%d] q;\n", c.Qubits)
	fmt.Fprintf(&b, "bit[%d] c;\n", c.Qubits)
	for _, g := range c.Gates {
		switch g.Name {
		case GateRZ:
			fmt.Fprintf(&b, "rz(%.17g) q[%d];\n", g.Theta, g.Qubit)
		case GateCX:
			fmt.Fprintf(&b, "cx q[%d], q[%d];\n", g.Control, g.Qubit)
		default:
			fmt.Fprintf(&b, "%s q[%d];\n", g.Name, g.Qubit)
		}
	}
	b.WriteString("c = measure q;\n")
	return b.String()
}

// Draw renders a small ASCII diagram, one line per qubit.
func (c *Circuit) Draw() string {
	lines := make([]string, c.Qubits)
	for q := range lines {
		lines[q] = fmt.Sprintf("q%-2d:", q)
	}
	for _, g := range c.Gates {
		label := strings.ToUpper(string(g.Name))
		if g.Name == GateRZ {
			label = fmt.Sprintf("RZ(%.2f)", g.Theta)
		}
		width := len(label) + 2
		for q := range lines {
			switch {
			case q == g.Qubit:
				lines[q] += fmt.Sprintf("─%s─", label)
			case g.Control >= 0 && q == g.Control:
				lines[q] += "─" + centerPad("●", width-2) + "─"
			default:
				lines[q] += strings.Repeat("─", width)
			}
		}
	}
	for q := range lines {
		lines[q] += "─M─"
	}
	return strings.Join(lines, "\n")
}

func centerPad(s string, width int) string {
	pad := width - 1 // the marker is one rune wide
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat("─", left) + s + strings.Repeat("─", pad-left)
}
