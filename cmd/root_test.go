package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdHasExpectedSubcommands(t *testing.T) {
	expected := []string{"serve", "validate", "version"}

	var names []string
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	for _, want := range expected {
		assert.Contains(t, names, want)
	}
}

func TestSetVersion(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() {
		rootCmd.Version = originalVersion
	}()

	SetVersion("v9.9.9")
	assert.Equal(t, "v9.9.9", rootCmd.Version)
}

func TestServeCmdFlagDefaults(t *testing.T) {
	cmd := newServeCmd()

	transport, err := cmd.Flags().GetString("transport")
	require.NoError(t, err)
	assert.Equal(t, transportStdio, transport)

	verify, err := cmd.Flags().GetBool("verify-ssl")
	require.NoError(t, err)
	assert.True(t, verify)

	readOnly, err := cmd.Flags().GetBool("read-only")
	require.NoError(t, err)
	assert.False(t, readOnly)

	maxLines, err := cmd.Flags().GetInt("max-tail-lines")
	require.NoError(t, err)
	assert.Equal(t, 1000, maxLines)
}
