// Package config reads the environment defaults of the slidekit command.
// Command-line flags override every value read here.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aretw0/slidekit/internal/logging"
)

// Config holds the environment defaults.
type Config struct {
	RedisURL          string        `env:"SLIDEKIT_REDIS_URL"`
	HTTPAddr          string        `env:"SLIDEKIT_HTTP_ADDR" envDefault:":8080"`
	CompletionTimeout time.Duration `env:"SLIDEKIT_COMPLETION_TIMEOUT" envDefault:"0s"`
	LogLevel          string        `env:"SLIDEKIT_LOG_LEVEL" envDefault:"info"`
	SessionDir        string        `env:"SLIDEKIT_SESSION_DIR"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("SLIDEKIT_LOG_LEVEL: %w", err)
	}
	if cfg.CompletionTimeout < 0 {
		return Config{}, fmt.Errorf("SLIDEKIT_COMPLETION_TIMEOUT must not be negative, got %s", cfg.CompletionTimeout)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Level returns the configured log level. Load has already validated it.
func (c Config) Level() slog.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}
