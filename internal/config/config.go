// Package config handles loading and validating runtime configuration for the Match Explorer API.
// Configuration values (like the listen port and where to fetch StatsBomb data from) are read
// from environment variables rather than being hardcoded, so the same binary can run against
// the public open-data host in production and a local checkout of the data in development.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	// env fills a struct from environment variables using `env:"..."` struct tags,
	// including defaults and type conversion (ints, bools, durations).
	"github.com/caarlos0/env/v10"
	// godotenv reads a .env file and loads its key=value pairs into the process environment.
	// This is convenient in development; in production real env vars are used instead.
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	// Host is the interface to bind; empty means all interfaces.
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"5000"`
	// Env is the runtime environment: "development", "staging", or "production".
	Env      string `env:"ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// Static is the directory the front-end bundle is served from.
	Static   string `env:"STATIC_ROOT" envDefault:"."`

	MetricsEnabled  bool          `env:"METRICS_ENABLED" envDefault:"true"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	StatsBomb StatsBombConfig
	Cache     CacheConfig
}

// StatsBombConfig says where open-data documents come from.
// When DataDir is set the files are read from disk and DataURL is ignored.
type StatsBombConfig struct {
	DataURL string        `env:"STATSBOMB_DATA_URL" envDefault:"https://raw.githubusercontent.com/statsbomb/open-data/master/data"`
	DataDir string        `env:"STATSBOMB_DATA_DIR"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`
}

// CacheConfig controls the in-memory provider response cache.
type CacheConfig struct {
	Enabled  bool          `env:"CACHE_ENABLED" envDefault:"true"`
	TTL      time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	// MaxBytes bounds the estimated size of all cached tables together (256 MiB).
	MaxBytes int64         `env:"CACHE_MAX_BYTES" envDefault:"268435456"`
}

// Load reads configuration from environment variables and returns a validated Config.
// It first tries to load a .env file for local development. The error from godotenv.Load
// is ignored on purpose: a missing .env file is the normal case outside development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.LogLevel)
	}

	if c.Static == "" {
		return fmt.Errorf("static root must not be empty")
	}
	if c.StatsBomb.DataDir == "" && c.StatsBomb.DataURL == "" {
		return fmt.Errorf("one of STATSBOMB_DATA_DIR or STATSBOMB_DATA_URL is required")
	}
	if c.StatsBomb.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive, got %s", c.StatsBomb.Timeout)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache ttl must be positive, got %s", c.Cache.TTL)
		}
		if c.Cache.MaxBytes < 1 {
			return fmt.Errorf("cache max bytes must be at least 1, got %d", c.Cache.MaxBytes)
		}
	}
	return nil
}

// Addr is the listen address, e.g. ":5000" or "127.0.0.1:5000".
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
