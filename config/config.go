package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. An empty URL disables event
// publication, which the one-shot CLI import relies on.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// ObservabilityConfig holds configuration for observability components.
type ObservabilityConfig struct {
	MetricsEnabled bool   `yaml:"metrics_enabled"`
	Environment    string `yaml:"environment"`
}

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is absent. Env vars override file
// values either way.
func LoadConfig(filename string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Observability.Environment = v
	}

	applyDefaults(cfg)

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required (set postgres.dsn or DATABASE_URL)")
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "development"
	}
}
