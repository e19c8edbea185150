package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRESQL_URI", "postgres://localhost:5432/tasks")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ALGORITHM", "")
	t.Setenv("TOKEN_TTL_MINUTES", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("PORT", "")
	t.Setenv("DEBUG", "")
	t.Setenv("MQTT_URL", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWTAlgorithm != "HS256" {
		t.Errorf("algorithm = %q, want HS256", cfg.JWTAlgorithm)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Errorf("ttl = %v, want 7 days", cfg.TokenTTL)
	}
	if cfg.Port != "3000" {
		t.Errorf("port = %q, want 3000", cfg.Port)
	}
	if cfg.AllowedOrigins != "http://localhost:3000" {
		t.Errorf("origins = %q", cfg.AllowedOrigins)
	}
	if cfg.Debug {
		t.Error("debug should default to false")
	}
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("POSTGRESQL_URI", "")
	if _, err := Load(); err == nil {
		t.Error("missing POSTGRESQL_URI should fail")
	}

	setRequired(t)
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Error("missing JWT_SECRET should fail")
	}
}

func TestLoadAlgorithm(t *testing.T) {
	setRequired(t)
	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Setenv("JWT_ALGORITHM", alg)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("%s: %v", alg, err)
		}
		if cfg.JWTAlgorithm != alg {
			t.Errorf("algorithm = %q, want %s", cfg.JWTAlgorithm, alg)
		}
	}

	t.Setenv("JWT_ALGORITHM", "RS256")
	if _, err := Load(); err == nil {
		t.Error("asymmetric algorithm should be rejected")
	}
}

func TestLoadTokenTTL(t *testing.T) {
	setRequired(t)

	t.Setenv("TOKEN_TTL_MINUTES", "15")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenTTL != 15*time.Minute {
		t.Errorf("ttl = %v, want 15m", cfg.TokenTTL)
	}

	for _, bad := range []string{"abc", "0", "-5"} {
		t.Setenv("TOKEN_TTL_MINUTES", bad)
		if _, err := Load(); err == nil {
			t.Errorf("TOKEN_TTL_MINUTES=%q should fail", bad)
		}
	}
}
