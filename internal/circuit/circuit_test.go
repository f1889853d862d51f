package circuit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malinowski-marek/qrng/internal/common/qrngerrors"
)

func TestNewRandomCircuit(t *testing.T) {
	c, err := NewRandomCircuit(6)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Qubits)
	require.Len(t, c.Gates, 6)
	for q, g := range c.Gates {
		assert.Equal(t, GateH, g.Name)
		assert.Equal(t, q, g.Qubit)
	}
	assert.Equal(t, 1, c.Depth())
}

func TestNewRandomCircuitRejectsNonPositiveWidth(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		_, err := NewRandomCircuit(n)
		require.Error(t, err)
		assert.True(t, qrngerrors.IsInvalidArgument(err))
	}
}

func TestDomainMax(t *testing.T) {
	tests := map[string]struct {
		qubits int
		want   uint64
	}{
		"one qubit":    {1, 1},
		"two qubits":   {2, 3},
		"six qubits":   {6, 63},
		"eight qubits": {8, 255},
		"full word":    {64, ^uint64(0)},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := NewRandomCircuit(tc.qubits)
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.DomainMax())
		})
	}
}

func TestQASM(t *testing.T) {
	c, err := NewRandomCircuit(3)
	require.NoError(t, err)

	qasm := c.QASM()
	assert.True(t, strings.HasPrefix(qasm, "OPENQASM 3.0;\n"))
	assert.Contains(t, qasm, "qubit[3] q;")
	assert.Contains(t, qasm, "bit[3] c;")
	for _, line := range []string{"h q[0];", "h q[1];", "h q[2];"} {
		assert.Contains(t, qasm, line)
	}
	assert.Contains(t, qasm, "c = measure q;")
}

func TestQASMTwoQubitGates(t *testing.T) {
	c := &Circuit{Qubits: 2}
	c.H(0)
	c.CX(0, 1)

	qasm := c.QASM()
	assert.Contains(t, qasm, "cx q[0], q[1];")
}

func TestDepthCountsParallelGatesOnce(t *testing.T) {
	c := &Circuit{Qubits: 2}
	c.H(0)
	c.H(1)
	assert.Equal(t, 1, c.Depth())
	assert.Equal(t, 2, c.OpCount())

	c.CX(0, 1)
	assert.Equal(t, 2, c.Depth())

	c.X(0)
	assert.Equal(t, 3, c.Depth())
}

func TestDrawContainsEveryQubit(t *testing.T) {
	c, err := NewRandomCircuit(4)
	require.NoError(t, err)

	diagram := c.Draw()
	lines := strings.Split(diagram, "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Contains(t, line, "H")
		assert.Contains(t, line, "M")
	}
}
