package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "shiftlog.db", filepath.Base(cfg.DBPath))
	assert.Equal(t, "logs", filepath.Base(cfg.LogDir))
	assert.Equal(t, "pt-BR", cfg.Locale)
	assert.NotEmpty(t, cfg.ExportDir)
	assert.False(t, cfg.Debug)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
db_path: /tmp/shifts.db
log_dir: /tmp/logs
debug: true
locale: en-US
export_dir: /tmp/out
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/shifts.db", cfg.DBPath)
	assert.Equal(t, "/tmp/logs", cfg.LogDir)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.Equal(t, "/tmp/out", cfg.ExportDir)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.DBPath)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /tmp/file.db\nlocale: pt-BR\n"), 0o644))

	t.Setenv("SHIFTLOG_DB_PATH", "/tmp/env.db")
	t.Setenv("SHIFTLOG_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "pt-BR", cfg.Locale)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadBadEnvironmentValue(t *testing.T) {
	t.Setenv("SHIFTLOG_DEBUG", "not-a-bool")
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	in := &Config{DBPath: "/a.db", LogDir: "/logs", Locale: "en-US", ExportDir: "/out"}
	require.NoError(t, in.Save(path))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
