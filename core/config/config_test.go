package config_test

import (
	"testing"
	"time"

	"delivery-reconciler/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Ledger.TimeoutSeconds)
	assert.Equal(t, 6*time.Hour, cfg.Cache.FoundTTL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.NotFoundTTL)
	assert.Equal(t, "memory", cfg.Cache.Store)
	assert.False(t, cfg.Archive.Enabled)
	assert.Equal(t, "json", cfg.Log.Format)

	// Defaults must satisfy the cache invariants.
	assert.NoError(t, cfg.Cache.Validate())
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_NOT_FOUND_TTL", "5m")
	t.Setenv("CACHE_STORE", "database")
	t.Setenv("LEDGER_BASE_URL", "https://ledger.example.com")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Cache.NotFoundTTL)
	assert.Equal(t, "database", cfg.Cache.Store)
	assert.Equal(t, "https://ledger.example.com", cfg.Ledger.BaseURL)
}
