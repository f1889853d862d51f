package circuit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malinowski-marek/qrng/internal/common/qrngerrors"
)

func TestTranspileEmitsBasisGatesOnly(t *testing.T) {
	c, err := NewRandomCircuit(6)
	require.NoError(t, err)

	for level := 0; level <= 2; level++ {
		adapted, err := Transpile(c, level)
		require.NoError(t, err)
		assert.Equal(t, c.Qubits, adapted.Qubits, "adaptation must not change the output domain")
		for _, g := range adapted.Gates {
			assert.True(t, BasisGates[g.Name], "gate %s is not in the hardware basis", g.Name)
		}
	}
}

func TestTranspileHadamardDecomposition(t *testing.T) {
	c := &Circuit{Qubits: 1}
	c.H(0)

	adapted, err := Transpile(c, 0)
	require.NoError(t, err)
	require.Len(t, adapted.Gates, 3)
	assert.Equal(t, GateRZ, adapted.Gates[0].Name)
	assert.InDelta(t, math.Pi/2, adapted.Gates[0].Theta, 1e-15)
	assert.Equal(t, GateSX, adapted.Gates[1].Name)
	assert.Equal(t, GateRZ, adapted.Gates[2].Name)
}

func TestTranspileMergesAdjacentRotations(t *testing.T) {
	// h h on the same qubit produces ... rz rz ... which level 1 merges.
	c := &Circuit{Qubits: 1}
	c.H(0)
	c.H(0)

	literal, err := Transpile(c, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, literal.OpCount())

	merged, err := Transpile(c, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, merged.OpCount())
	assert.InDelta(t, math.Pi, merged.Gates[2].Theta, 1e-15)
}

func TestTranspileDropsFullTurnRotations(t *testing.T) {
	c := &Circuit{Qubits: 1}
	c.RZ(0, math.Pi)
	c.RZ(0, math.Pi)
	c.SX(0)

	level1, err := Transpile(c, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, level1.OpCount(), "level 1 merges but keeps the zero rotation")

	level2, err := Transpile(c, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, level2.OpCount(), "level 2 drops the full-turn rotation")
	assert.Equal(t, GateSX, level2.Gates[0].Name)
}

func TestTranspileOpCountNeverGrowsWithLevel(t *testing.T) {
	c, err := NewRandomCircuit(8)
	require.NoError(t, err)
	c.H(0) // second h on qubit 0 gives the optimizer something to do
	c.CX(0, 1)

	previous := math.MaxInt32
	for level := 0; level <= 2; level++ {
		adapted, err := Transpile(c, level)
		require.NoError(t, err)
		assert.LessOrEqual(t, adapted.OpCount(), previous)
		previous = adapted.OpCount()
	}
}

func TestTranspileDoesNotMergeAcrossQubits(t *testing.T) {
	c := &Circuit{Qubits: 2}
	c.RZ(0, math.Pi/2)
	c.RZ(1, math.Pi/2)

	adapted, err := Transpile(c, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, adapted.OpCount())
}

func TestTranspileRejectsBadLevel(t *testing.T) {
	c, err := NewRandomCircuit(2)
	require.NoError(t, err)

	for _, level := range []int{-1, 3, 10} {
		_, err := Transpile(c, level)
		require.Error(t, err)
		assert.True(t, qrngerrors.IsInvalidArgument(err))
	}
}
