package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/nomenlabs/nomen/internal/config"
)

// setTestConfig installs a fresh temp-dir configuration for the
// duration of one test.
func setTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		DatabasePath: filepath.Join(dir, "test.db"),
		DataDir:      filepath.Join(dir, "data"),
		OutputFormat: "text",
	}
	SetConfig(cfg)
	t.Cleanup(func() { SetConfig(nil) })
	return cfg
}

// execute runs a command with captured output.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestNewLintCommand(t *testing.T) {
	cmd := NewLintCommand()

	require.Equal(t, "lint [scope]", cmd.Use)
	require.NotEmpty(t, cmd.Short)
	require.NotEmpty(t, cmd.Example)

	for _, flag := range []string{"fix", "interactive", "network", "enable-all", "check", "limit", "format", "review"} {
		require.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewRulesCommand(t *testing.T) {
	cmd := NewRulesCommand()

	require.Equal(t, "rules", cmd.Use)
	require.NotEmpty(t, cmd.Short)
	for _, flag := range []string{"kind", "format"} {
		require.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewShellCommand(t *testing.T) {
	cmd := NewShellCommand()

	require.Equal(t, "shell", cmd.Use)
	require.NotEmpty(t, cmd.Short)
	require.NotEmpty(t, cmd.Long)
}

func TestNewSeedCommand(t *testing.T) {
	cmd := NewSeedCommand()

	require.Equal(t, "seed", cmd.Use)
	require.NotEmpty(t, cmd.Short)
	require.NotEmpty(t, cmd.Example)
}
