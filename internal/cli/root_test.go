package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "nomen", cmd.Use)
	assert.NotEmpty(t, cmd.Long)

	for _, flag := range []string{"config", "database", "verbose", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "persistent flag %q should exist", flag)
	}

	want := []string{"version", "init", "lint", "rules", "shell", "seed", "completion"}
	have := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		have[sub.Name()] = true
	}
	for _, name := range want {
		assert.True(t, have[name], "subcommand %q should be registered", name)
	}
}

func TestVersionTemplate(t *testing.T) {
	cmd := NewRootCmd()
	require.Equal(t, Version, cmd.Version)
}
