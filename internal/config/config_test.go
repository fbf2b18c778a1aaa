package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_HOST", "RUN_MIGRATIONS", "CORS_ORIGINS", "MAX_BODY_BYTES"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DBHost != "localhost" {
		t.Errorf("DBHost = %q", cfg.DBHost)
	}
	if !cfg.RunMigrations {
		t.Error("RunMigrations should default to true")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes = %d", cfg.MaxBodyBytes)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("MAX_BODY_BYTES", "not-a-number")
	t.Setenv("DB_NAME", "quizdb")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.RunMigrations {
		t.Error("RunMigrations should be false")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Errorf("invalid MAX_BODY_BYTES should fall back, got %d", cfg.MaxBodyBytes)
	}
	if want := "dbname=quizdb"; !strings.Contains(cfg.DSN(), want) {
		t.Errorf("DSN %q missing %q", cfg.DSN(), want)
	}
}

func TestUsingDefaultJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if !Load().UsingDefaultJWTSecret() {
		t.Error("unset JWT_SECRET should report the default key")
	}

	t.Setenv("JWT_SECRET", "prod-secret")
	if Load().UsingDefaultJWTSecret() {
		t.Error("explicit JWT_SECRET should not report the default key")
	}
}
