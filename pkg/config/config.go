// Package config loads service settings from .env files, an optional YAML
// file and SCHEDULER_* environment variables.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config contains process configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// GinMode is passed to gin.SetMode; empty means release.
	GinMode string `koanf:"gin_mode"`

	// DatabaseURL selects Postgres when set, otherwise SQLite at DataPath.
	DatabaseURL string `koanf:"database_url"`
	DataPath    string `koanf:"data_path"`

	JWTSecret     string `koanf:"jwt_secret"`
	MasterSecret  string `koanf:"api_master_secret"`
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`

	// DefaultRateLimit is stored on newly created API keys.
	DefaultRateLimit int `koanf:"default_rate_limit"`

	// MaxLeadShifts and MaxOtherShifts are the default lifetime caps per
	// employee class; requests may override them.
	MaxLeadShifts  int `koanf:"max_lead_shifts"`
	MaxOtherShifts int `koanf:"max_other_shifts"`

	// MaxDays bounds the length of a requested date range.
	MaxDays int `koanf:"max_days"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:             ":8000",
		LogLevel:         "info",
		DataPath:         "api_keys.db",
		AdminUsername:    "admin",
		AdminPassword:    "admin123",
		DefaultRateLimit: 10000,
		MaxLeadShifts:    15,
		MaxOtherShifts:   12,
		MaxDays:          62,
	}
}

// Validate checks the values that the service cannot run without.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxLeadShifts <= 0 || c.MaxOtherShifts <= 0:
		return fmt.Errorf("%w: shift caps must be positive", ErrInvalidConfig)
	case c.MaxDays <= 0:
		return fmt.Errorf("%w: max_days must be positive", ErrInvalidConfig)
	case c.DefaultRateLimit <= 0:
		return fmt.Errorf("%w: default_rate_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
