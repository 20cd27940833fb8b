package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "prompt: \"> \"\nlog_level: debug\nhistory_limit: 42\nbanner: false\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 42, cfg.HistoryLimit)
	assert.False(t, cfg.Banner)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "log_level: warn\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, Default().Prompt, cfg.Prompt)
	assert.Equal(t, Default().HistoryLimit, cfg.HistoryLimit)
}

func TestLoadMalformedYaml(t *testing.T) {
	path := writeConfig(t, "{{{")

	cfg, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
	// Defaults still come back so the caller can start anyway.
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalidValues(t *testing.T) {
	path := writeConfig(t, "log_level: verbose\n")
	cfg, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log_level")
	assert.Equal(t, Default(), cfg)

	path = writeConfig(t, "history_limit: -1\n")
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history_limit")
}
