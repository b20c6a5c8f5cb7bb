package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecuteReturnsCommandError(t *testing.T) {
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, Execute())
}

func TestExecuteRejectsUnknownCommand(t *testing.T) {
	rootCmd.SetArgs([]string{"no-such-command"})
	defer rootCmd.SetArgs(nil)

	require.Error(t, Execute())
}

func TestSubcommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "worker", "migrate", "rollback", "seed", "check", "version"} {
		require.Contains(t, names, want)
	}
}
