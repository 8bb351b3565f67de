package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SCHEDULER_"

// DefaultEnvPaths are searched for a .env file, first match wins.
var DefaultEnvPaths = []string{".env", "../.env", "../../.env"}

// LoadDotEnv loads the first .env file found in paths. Existing process
// variables are never overwritten.
func LoadDotEnv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New)
//  2. the YAML file named by SCHEDULER_CONFIG, if set
//  3. SCHEDULER_* environment variables
//
// The unprefixed variables the API has always read (PORT, DATABASE_URL,
// JWT_SECRET, ...) fill in anything the layers above left unset.
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: read env: %v", ErrInvalidConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	applyLegacyEnv(k, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyLegacyEnv(k *koanf.Koanf, cfg *Config) {
	legacy := []struct {
		key    string
		envVar string
		set    func(string)
	}{
		{"addr", "PORT", func(v string) { cfg.Addr = ":" + strings.TrimPrefix(v, ":") }},
		{"gin_mode", "GIN_MODE", func(v string) { cfg.GinMode = v }},
		{"database_url", "DATABASE_URL", func(v string) { cfg.DatabaseURL = v }},
		{"data_path", "DATA_PATH", func(v string) { cfg.DataPath = v }},
		{"jwt_secret", "JWT_SECRET", func(v string) { cfg.JWTSecret = v }},
		{"api_master_secret", "API_MASTER_SECRET", func(v string) { cfg.MasterSecret = v }},
		{"admin_username", "ADMIN_USERNAME", func(v string) { cfg.AdminUsername = v }},
		{"admin_password", "ADMIN_PASSWORD", func(v string) { cfg.AdminPassword = v }},
	}
	for _, l := range legacy {
		if k.Exists(l.key) {
			continue
		}
		if v := os.Getenv(l.envVar); v != "" {
			l.set(v)
		}
	}
}
