// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the site configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBDriver   string `env:"TUITION_DB_DRIVER" envDefault:"sqlite"`
	DBDSN      string `env:"TUITION_DB_DSN" envDefault:"./data/tuition.db"`
	ServerHost string `env:"TUITION_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"TUITION_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"TUITION_ENV" envDefault:"development"`
	LogLevel   string `env:"TUITION_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"TUITION_LOG_FORMAT" envDefault:"text"`

	// Admin secret. The hash form takes precedence when both are set.
	AdminPassword     string `env:"TUITION_ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"TUITION_ADMIN_PASSWORD_HASH"` // argon2id encoded hash

	// Booking notifications
	ResendAPIKey string `env:"TUITION_RESEND_API_KEY"`
	AdminEmail   string `env:"TUITION_ADMIN_EMAIL"` // receives new booking notifications
	FromEmail    string `env:"TUITION_FROM_EMAIL"`  // sender address for both messages

	// EmailLogOnly logs messages through the no-op sender instead of the provider.
	EmailLogOnly bool `env:"TUITION_EMAIL_LOG_ONLY" envDefault:"false"`

	// Request protection
	APIRateLimit     float64       `env:"TUITION_API_RATE_LIMIT" envDefault:"20"`
	APIRateBurst     int           `env:"TUITION_API_RATE_BURST" envDefault:"40"`
	LoginMaxFailures int           `env:"TUITION_LOGIN_MAX_FAILURES" envDefault:"5"`
	RequestTimeout   time.Duration `env:"TUITION_REQUEST_TIMEOUT" envDefault:"30s"`

	// Seeding configuration
	DoSeed bool `env:"TUITION_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// AdminSecretConfigured returns true if any form of admin secret is set.
func (c Config) AdminSecretConfigured() bool {
	return c.AdminPassword != "" || c.AdminPasswordHash != ""
}

// EmailEnabled returns true if every setting needed to send booking mail is present.
func (c Config) EmailEnabled() bool {
	return c.ResendAPIKey != "" && c.AdminEmail != "" && c.FromEmail != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if !cfg.AdminSecretConfigured() {
		slog.Warn("no admin password configured; admin login will always fail",
			"hint", "set TUITION_ADMIN_PASSWORD or TUITION_ADMIN_PASSWORD_HASH")
	}
	if !cfg.EmailEnabled() {
		slog.Warn("email notifications are not fully configured; bookings will be saved without email")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("TUITION_DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("TUITION_DB_DSN must not be empty")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("TUITION_SERVER_PORT out of range: %d", c.ServerPort)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("TUITION_LOG_FORMAT must be \"text\" or \"json\", got %q", c.LogFormat)
	}
	if c.APIRateLimit <= 0 || c.APIRateBurst <= 0 {
		return fmt.Errorf("TUITION_API_RATE_LIMIT and TUITION_API_RATE_BURST must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("TUITION_REQUEST_TIMEOUT must be positive")
	}
	return nil
}
