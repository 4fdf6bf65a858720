package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesTemplateAndDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, err, "template config must be written on first run")

	assert.Equal(t, "csv", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(dir, "journal.csv"), cfg.Storage.Path)
	assert.Equal(t, 10*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, "127.0.0.1:8090", cfg.Server.Addr)
	assert.True(t, cfg.UI.ColorEnabled)
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[storage]
backend = "sqlite"
path = "/tmp/test-journal.db"

[feed]
base_url = "http://localhost:9999"
timeout = "3s"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/test-journal.db", cfg.Storage.Path)
	assert.Equal(t, "http://localhost:9999", cfg.Feed.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Feed.Timeout)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	content := `
[storage]
backend = "gsheets"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JOURNAL_STORAGE_PATH", "/tmp/override.csv")
	t.Setenv("JOURNAL_FEED_URL", "http://localhost:1234")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.csv", cfg.Storage.Path)
	assert.Equal(t, "http://localhost:1234", cfg.Feed.BaseURL)
}
