package config

import (
	"os"
	"testing"
	"time"
)

const testSecret = "test-secret-key-at-least-32-chars!!"

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	defer os.Unsetenv("JWT_SECRET")

	envVars := []string{"SERVER_ADDR", "SERVER_PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "TOKEN_TTL", "RATE_LIMIT_ENABLED"}
	for _, v := range envVars {
		os.Unsetenv(v)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.DBHost != "localhost" {
		t.Errorf("DBHost = %q, want %q", cfg.DBHost, "localhost")
	}
	if cfg.DBName != "taskhive" {
		t.Errorf("DBName = %q, want %q", cfg.DBName, "taskhive")
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %v, want %v", cfg.TokenTTL, 30*time.Minute)
	}
	if !cfg.RateLimitEnabled {
		t.Error("RateLimitEnabled = false, want true")
	}
}

func TestLoad_RequiredJWTSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without JWT_SECRET")
	}

	os.Setenv("JWT_SECRET", "too-short")
	defer os.Unsetenv("JWT_SECRET")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a short JWT_SECRET")
	}
}

func TestLoad_Overrides(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	os.Setenv("TOKEN_TTL", "1h")
	os.Setenv("DB_PORT", "15432")
	defer func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("TOKEN_TTL")
		os.Unsetenv("DB_PORT")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want %v", cfg.TokenTTL, time.Hour)
	}
	if cfg.DBPort != 15432 {
		t.Errorf("DBPort = %d, want %d", cfg.DBPort, 15432)
	}
}
