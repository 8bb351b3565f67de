package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SCHEDULER_CONFIG", "")
	t.Setenv("PORT", "")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8000" || cfg.MaxLeadShifts != 15 || cfg.MaxOtherShifts != 12 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scheduler.yaml")
	yml := "addr: \":9100\"\nmax_lead_shifts: 20\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SCHEDULER_CONFIG", path)
	t.Setenv("SCHEDULER_MAX_OTHER_SHIFTS", "9")
	t.Setenv("SCHEDULER_LOG_LEVEL", "warn")
	t.Setenv("PORT", "7000")
	t.Setenv("JWT_SECRET", "legacy-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9100" {
		t.Errorf("Expected file addr to win over PORT, got %s", cfg.Addr)
	}
	if cfg.MaxLeadShifts != 20 || cfg.MaxOtherShifts != 9 {
		t.Errorf("Expected caps 20/9, got %d/%d", cfg.MaxLeadShifts, cfg.MaxOtherShifts)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected env to override file, got %s", cfg.LogLevel)
	}
	if cfg.JWTSecret != "legacy-secret" {
		t.Errorf("Expected legacy JWT_SECRET fallback, got %q", cfg.JWTSecret)
	}
}

func TestLoadLegacyPort(t *testing.T) {
	t.Setenv("SCHEDULER_CONFIG", "")
	t.Setenv("PORT", "8123")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8123" {
		t.Errorf("Expected :8123, got %s", cfg.Addr)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("SCHEDULER_CONFIG", "")
	t.Setenv("SCHEDULER_MAX_DAYS", "0")
	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}

	t.Setenv("SCHEDULER_MAX_DAYS", "")
	t.Setenv("SCHEDULER_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for a missing file, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("SCHEDULER_TEST_DOTENV=loaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SCHEDULER_TEST_DOTENV", "")
	os.Unsetenv("SCHEDULER_TEST_DOTENV")

	LoadDotEnv(filepath.Join(dir, "nope.env"), path)
	if got := os.Getenv("SCHEDULER_TEST_DOTENV"); got != "loaded" {
		t.Errorf("Expected value from .env, got %q", got)
	}
}
