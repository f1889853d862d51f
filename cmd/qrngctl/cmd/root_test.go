package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdRegistersSubcommands(t *testing.T) {
	cmd := RootCmd()

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"generate", "backends", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCmdConnectionFlags(t *testing.T) {
	cmd := RootCmd()

	for _, flag := range []string{"serviceUrl", "token", "config", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing persistent flag %s", flag)
	}
}

func TestGenerateCmdFlagDefaults(t *testing.T) {
	cmd := RootCmd()
	generate, _, err := cmd.Find([]string{"generate"})
	require.NoError(t, err)

	qubits, err := generate.Flags().GetInt("qubits")
	require.NoError(t, err)
	assert.Equal(t, 6, qubits)

	shots, err := generate.Flags().GetInt("shots")
	require.NoError(t, err)
	assert.Equal(t, 1024, shots)

	optLevel, err := generate.Flags().GetInt("opt-level")
	require.NoError(t, err)
	assert.Equal(t, 1, optLevel)

	output, err := generate.Flags().GetString("output")
	require.NoError(t, err)
	assert.Equal(t, "qrng_results.png", output)
}
