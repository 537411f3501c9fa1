package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foco", "config.toml")

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "blue", cfg.DefaultColor)

	_, err = os.Stat(path)
	assert.NoError(t, err, "defaults written on first launch")
}

func TestLoadOrCreate_ReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	raw := []byte("backend = \"file\"\ndata_path = \"/tmp/foco.json\"\ndefault_color = \"teal\"\n")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "/tmp/foco.json", cfg.DataPath)
	assert.Equal(t, "teal", cfg.DefaultColor)
}

func TestLoadOrCreate_FillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("db_path = \"x.db\"\n"), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "x.db", cfg.DBPath)
	assert.Equal(t, "blue", cfg.DefaultColor)
}
