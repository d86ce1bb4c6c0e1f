package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config defines sensorhub service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"SENSORHUB_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"SENSORHUB_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"SENSORHUB_REDIS_ADDR"`
		Password string `yaml:"password" env:"SENSORHUB_REDIS_PASSWORD"`
	} `yaml:"redis"`
	Telemetry struct {
		BaseURL        string `yaml:"base_url" env:"SENSORHUB_TELEMETRY_URL"`
		APIKey         string `yaml:"api_key" env:"SENSORHUB_TELEMETRY_API_KEY"`
		TimeoutSeconds int    `yaml:"timeout_seconds" env:"SENSORHUB_TELEMETRY_TIMEOUT_SECONDS"`
	} `yaml:"telemetry"`
	Polling struct {
		Enabled         bool `yaml:"enabled" env:"SENSORHUB_POLLING_ENABLED"`
		IntervalSeconds int  `yaml:"interval_seconds" env:"SENSORHUB_POLLING_INTERVAL_SECONDS"`
	} `yaml:"polling"`
	Catalog struct {
		TTLSeconds     int `yaml:"ttl_seconds" env:"SENSORHUB_CATALOG_TTL_SECONDS"`
		SlidingSeconds int `yaml:"sliding_seconds" env:"SENSORHUB_CATALOG_SLIDING_SECONDS"`
	} `yaml:"catalog"`
}

// Load configuration from YAML file and environment.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8086"
	cfg.Telemetry.TimeoutSeconds = 10
	cfg.Polling.Enabled = true
	cfg.Polling.IntervalSeconds = 10
	cfg.Catalog.TTLSeconds = 60
	cfg.Catalog.SlidingSeconds = 5

	if err := load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Telemetry.BaseURL) == "" {
		return nil, errors.New("config: telemetry base url required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8086"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// TelemetryTimeout returns the per-request timeout for the external API.
func (c *Config) TelemetryTimeout() time.Duration {
	if c.Telemetry.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Telemetry.TimeoutSeconds) * time.Second
}

// PollingInterval returns the scheduler tick interval.
func (c *Config) PollingInterval() time.Duration {
	if c.Polling.IntervalSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Polling.IntervalSeconds) * time.Second
}

// CatalogTTL returns the absolute catalog cache lifetime.
func (c *Config) CatalogTTL() time.Duration {
	if c.Catalog.TTLSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Catalog.TTLSeconds) * time.Second
}

// CatalogSliding returns the sliding freshness window of the catalog cache.
func (c *Config) CatalogSliding() time.Duration {
	if c.Catalog.SlidingSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Catalog.SlidingSeconds) * time.Second
}
