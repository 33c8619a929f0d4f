package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.internal
  database: geofoncier_test
ledger:
  rank_retry_attempts: 5
cache:
  status_ttl_seconds: 30
`)

	cfg, err := Load("", path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 5, cfg.Ledger.RankRetryAttempts)
	assert.Equal(t, 30*time.Second, cfg.Cache.StatusTTL())
	assert.Equal(t, "./configs/rbac_model.conf", cfg.Permission.ModelPath)
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvironmentWins(t *testing.T) {
	path := writeConfig(t, "redis:\n  host: cache.internal\n")
	t.Setenv("GEOFONCIER_REDIS_HOST", "redis.override")
	t.Setenv("GEOFONCIER_CACHE_STATUS_TTL_SECONDS", "0")

	cfg, err := Load("production", path)
	require.NoError(t, err)

	assert.Equal(t, "redis.override", cfg.Redis.Host)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, 60*time.Second, cfg.Cache.StatusTTL(), "non-positive TTL falls back to the default")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
