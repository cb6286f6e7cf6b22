package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PANRES_CONFIG", "PANRES_DATA", "PANRES_DB", "PANRES_ADDR", "PANRES_STATIC",
		"PANRES_SERVER", "PANRES_LOG_LEVEL", "PANRES_AUTOCOMPLETE_LIMIT", "PANRES_AUTOCOMPLETE_RPS"} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, filepath.Join("./data", "db", "panres.db"), cfg.DBPath)
	assert.Equal(t, 10, cfg.AutocompleteLimit)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /srv/panres\naddr: \":9000\"\nautocomplete_limit: 25\nlog_level: debug\n"), 0o644))
	t.Setenv("PANRES_ADDR", "127.0.0.1:7000")
	t.Setenv("PANRES_LOG_LEVEL", "WARN")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/panres", cfg.DataDir)
	assert.Equal(t, "/srv/panres/db/panres.db", cfg.DBPath)
	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
	assert.Equal(t, 25, cfg.AutocompleteLimit)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("PANRES_AUTOCOMPLETE_LIMIT", "0")
	t.Setenv("PANRES_LOG_LEVEL", "loud")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "autocompletelimit must be at least 1")
	assert.Contains(t, err.Error(), "loglevel must be one of")
}

func TestLoadBadNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("PANRES_AUTOCOMPLETE_RPS", "fast")
	_, err := Load("")
	assert.ErrorContains(t, err, "PANRES_AUTOCOMPLETE_RPS")
}
