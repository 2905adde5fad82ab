package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomenlabs/nomen/internal/config"
)

func TestInitCreatesCatalog(t *testing.T) {
	setTestConfig(t)
	dir := filepath.Join(t.TempDir(), "catalog")

	out, err := execute(t, NewInitCommand(), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "catalog initialized")

	for _, f := range []string{config.ConfigFileName, config.DefaultDatabase, config.DefaultDataDir} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "expected %s to exist", f)
	}

	raw, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "database: "+config.DefaultDatabase)
	assert.Contains(t, string(raw), "zoobank:")
}

func TestInitRefusesExistingConfig(t *testing.T) {
	setTestConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte("database: keep.db\n"), 0644))

	_, err := execute(t, NewInitCommand(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	raw, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "database: keep.db\n", string(raw))
}

func TestInitForceOverwrites(t *testing.T) {
	setTestConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte("database: keep.db\n"), 0644))

	_, err := execute(t, NewInitCommand(), dir, "--force")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "database: "+config.DefaultDatabase)
}
