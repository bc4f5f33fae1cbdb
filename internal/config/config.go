// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the decision service reads from its environment.
type Config struct {
	Addr     string `env:"INVITE_ADDR" envDefault:":8080"`
	GRPCAddr string `env:"INVITE_GRPC_ADDR" envDefault:""`

	// PGDSN points at the read-only Manage catalog mirror. Empty disables
	// catalog lookups; decision endpoints keep working without it.
	PGDSN string `env:"INVITE_PG_DSN" envDefault:""`

	DefaultLocale string `env:"INVITE_DEFAULT_LOCALE" envDefault:"en"`

	MaxBodyBytes   int64   `env:"INVITE_MAX_BODY_BYTES" envDefault:"1048576"`
	RateLimitRPS   float64 `env:"INVITE_RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int     `env:"INVITE_RATE_LIMIT_BURST" envDefault:"100"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("INVITE_ADDR must not be blank")
	}
	if strings.TrimSpace(c.DefaultLocale) == "" {
		return fmt.Errorf("INVITE_DEFAULT_LOCALE must not be blank")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("INVITE_MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("INVITE_RATE_LIMIT_RPS must be positive, got %v", c.RateLimitRPS)
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("INVITE_RATE_LIMIT_BURST must be positive, got %d", c.RateLimitBurst)
	}
	return nil
}

// CatalogEnabled reports whether a Manage catalog DSN is configured.
func (c Config) CatalogEnabled() bool {
	return strings.TrimSpace(c.PGDSN) != ""
}
