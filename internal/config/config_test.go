package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SENSORHUB_POSTGRES_DSN", "postgres://localhost/sensorhub")
	t.Setenv("SENSORHUB_TELEMETRY_URL", "http://telemetry.local")
	t.Setenv("SENSORHUB_HTTP_PORT", "9090")
	t.Setenv("SENSORHUB_POLLING_INTERVAL_SECONDS", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddress())
	assert.Equal(t, "postgres://localhost/sensorhub", cfg.Database.DSN)
	assert.Equal(t, "http://telemetry.local", cfg.Telemetry.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.PollingInterval())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SENSORHUB_POSTGRES_DSN", "postgres://localhost/sensorhub")
	t.Setenv("SENSORHUB_TELEMETRY_URL", "http://telemetry.local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8086", cfg.HTTPAddress())
	assert.Equal(t, 60*time.Second, cfg.CatalogTTL())
	assert.Equal(t, 5*time.Second, cfg.CatalogSliding())
	assert.Equal(t, 10*time.Second, cfg.TelemetryTimeout())
	assert.True(t, cfg.Polling.Enabled)
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SENSORHUB_POSTGRES_DSN", "")
	t.Setenv("SENSORHUB_TELEMETRY_URL", "http://telemetry.local")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dsn")
}

func TestLoadRequiresTelemetryURL(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SENSORHUB_POSTGRES_DSN", "postgres://localhost/sensorhub")
	t.Setenv("SENSORHUB_TELEMETRY_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telemetry")
}
