package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
[development]
environment = "development"
host = "localhost"
port = 8090
log_level = "trace"
log_to_stdout = true
api_base_url = "http://localhost:8000/"
session_dir_path = "/tmp/travelair-session"
offers_cache_ttl_seconds = 300
redis_host = "localhost"
redis_port = "6379"
login_rate_limit_allowed_per_min = 15
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "2112"

[production]
environment = "production"
host = "0.0.0.0"
port = 8090
log_level = "info"
logs_path = "/var/log/travelair/gateway.log"
sentry_enabled = true
api_base_url = "https://api.travelair.ro"
session_dir_path = "/var/lib/travelair/session"
offers_cache_ttl_seconds = 600
redis_host = "localhost"
redis_port = "6379"
login_rate_limit_allowed_per_min = 10
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "2112"
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigContent), 0600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestConfig(t)

	cfg, err := Load("development", path)
	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.Port)
	assert.Equal(t, "trace", cfg.LogLevel)
	// trailing slash is trimmed
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 300, cfg.OffersCacheTTLSeconds)
	assert.False(t, cfg.SentryEnabled)

	cfg, err = Load("prod", path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.travelair.ro", cfg.APIBaseURL)
	assert.True(t, cfg.SentryEnabled)
	assert.Equal(t, "/var/lib/travelair/session", cfg.SessionDirPath)
}

func TestLoad_UnknownEnv(t *testing.T) {
	path := writeTestConfig(t)
	cfg, err := Load("staging", path)
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("development", "/invalid/path/config.toml")
	require.Error(t, err)
	assert.Nil(t, cfg)
}
