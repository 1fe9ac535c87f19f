package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clrindex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project:
  dump_dir: ./dumps
database:
  path: ./out/symbols.db
filter:
  include:
    - "App.**"
  exclude:
    - "App.Generated.**"
  follow:
    - "Company.**"
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "./dumps", cfg.Project.DumpDir)
	assert.Equal(t, "./out/symbols.db", cfg.Database.Path)
	assert.Equal(t, []string{"App.**"}, cfg.Filter.Include)
	assert.Equal(t, []string{"App.Generated.**"}, cfg.Filter.Exclude)
	assert.Equal(t, []string{"Company.**"}, cfg.Filter.Follow)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Project.DumpDir)
	assert.Equal(t, "clrindex.db", cfg.Database.Path)
	assert.Empty(t, cfg.Filter.Include)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clrindex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project:
  dump_dir: ./dumps
`), 0o644))

	t.Setenv("CLRINDEX_DUMP_DIR", "/data/dumps")
	t.Setenv("CLRINDEX_DB", "/data/symbols.db")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/dumps", cfg.Project.DumpDir)
	assert.Equal(t, "/data/symbols.db", cfg.Database.Path)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clrindex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project: [not a mapping"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}
