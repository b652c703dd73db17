package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	assert.NoError(t, err)

	assert.Equal(t, "default", cfg.Edgerc.Section)
	assert.Empty(t, cfg.Edgerc.Path)
	assert.Empty(t, cfg.Edgerc.AccountSwitchKey)
	assert.Equal(t, 30, cfg.Edgerc.TimeoutSeconds)

	assert.Equal(t, 1, cfg.Batch.MaxRetries)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	assert.False(t, cfg.Archive.Enabled)
	assert.Equal(t, "dcv-results", cfg.Archive.Bucket)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("EDGERC_SECTION", "production")
	t.Setenv("BATCH_MAX_RETRIES", "3")
	t.Setenv("ARCHIVE_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	assert.NoError(t, err)

	assert.Equal(t, "production", cfg.Edgerc.Section)
	assert.Equal(t, 3, cfg.Batch.MaxRetries)
	assert.True(t, cfg.Archive.Enabled)
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o644)
	assert.NoError(t, err)

	cfg, err := LoadConfig(dir)
	assert.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}
