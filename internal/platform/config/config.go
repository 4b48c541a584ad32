// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to the character client, live sessions and server via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/chardex/pkg/pagination"
)

// # Configuration Schema

// Config holds all runtime configuration for the chardex server and CLI.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Remote character API
	CharacterAPIURL string `env:"CHARACTER_API_URL" envDefault:"https://api.disneyapi.dev/character"`

	// UpstreamTimeout bounds a single upstream request. Zero means no client timeout.
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"0s"`

	// Search page behaviour
	DebounceInterval time.Duration `env:"DEBOUNCE_INTERVAL" envDefault:"500ms"`
	DefaultPageSize  int           `env:"DEFAULT_PAGE_SIZE" envDefault:"50"`

	// Live session inbound event budget
	LiveEventsPerSecond float64 `env:"LIVE_EVENTS_PER_SECOND" envDefault:"20"`
	LiveEventBurst      int     `env:"LIVE_EVENT_BURST"       envDefault:"40"`

	// Tracing (OTLP over HTTP). Tracing is off when OTelEndpoint is empty.
	OTelEnabled  bool   `env:"OTEL_ENABLED"  envDefault:"true"`
	OTelEndpoint string `env:"OTEL_ENDPOINT"`

	// Cross-Origin Resource Sharing and live socket origins, comma separated
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.CharacterAPIURL); err != nil {
		return fmt.Errorf("config: invalid CHARACTER_API_URL: %w", err)
	}
	if c.DefaultPageSize < 1 || c.DefaultPageSize > pagination.MaxPageSize {
		return fmt.Errorf("config: DEFAULT_PAGE_SIZE must be between 1 and %d, got %d", pagination.MaxPageSize, c.DefaultPageSize)
	}
	if c.DebounceInterval < 0 {
		return fmt.Errorf("config: DEBOUNCE_INTERVAL must not be negative")
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins returns the cross-origin callers accepted outside development.
func (c *Config) AllowedOrigins() []string {
	return c.ExtraOrigins
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
