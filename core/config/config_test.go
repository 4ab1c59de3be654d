package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"destination-sync/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Transport.TimeoutSeconds)
	assert.Equal(t, 2000, cfg.Cache.MaxEntries)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "upsert", cfg.HubSpot.SyncMode)
	assert.Equal(t, 4, cfg.HubSpot.PropertyConcurrency)
	assert.True(t, cfg.HubSpot.Enabled)
	assert.Equal(t, "https://api.sky.blackbaud.com/constituent/v1", cfg.Blackbaud.BaseURL)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("HUBSPOT_SYNC_MODE", "add")
	t.Setenv("BLACKBAUD_ENABLED", "false")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "add", cfg.HubSpot.SyncMode)
	assert.False(t, cfg.Blackbaud.Enabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_FORMAT=console\nBLACKBAUD_SUBSCRIPTION_KEY=sub-key\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("LOG_FORMAT")
		os.Unsetenv("BLACKBAUD_SUBSCRIPTION_KEY")
	})

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "sub-key", cfg.Blackbaud.SubscriptionKey)
}

func TestLoadConfig_InvalidSyncMode(t *testing.T) {
	t.Setenv("HUBSPOT_SYNC_MODE", "merge")

	_, err := config.LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "merge")
}
