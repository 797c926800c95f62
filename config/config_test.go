package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("fails without a database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("TOKEN_SECRET", "s3cret")

		if _, err := Load(); err == nil {
			t.Fatal("Load() should fail without DATABASE_URL")
		}
	})

	t.Run("fails without a token secret", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/flowly")
		t.Setenv("TOKEN_SECRET", "")

		if _, err := Load(); err == nil {
			t.Fatal("Load() should fail without TOKEN_SECRET")
		}
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/flowly")
		t.Setenv("TOKEN_SECRET", "s3cret")
		t.Setenv("HTTP_ADDR", "")
		t.Setenv("TOKEN_TTL", "")
		t.Setenv("APP_BASE_URL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.HTTPAddr != ":8080" {
			t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
		}
		if cfg.TokenTTL != 24*time.Hour {
			t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
		}
		if cfg.AppBaseURL != "http://localhost:8080" {
			t.Errorf("AppBaseURL = %q", cfg.AppBaseURL)
		}
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/flowly")
		t.Setenv("TOKEN_SECRET", "s3cret")
		t.Setenv("HTTP_ADDR", ":9000")
		t.Setenv("TOKEN_TTL", "1h30m")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.HTTPAddr != ":9000" {
			t.Errorf("HTTPAddr = %q, want :9000", cfg.HTTPAddr)
		}
		if cfg.TokenTTL != 90*time.Minute {
			t.Errorf("TokenTTL = %v, want 1h30m", cfg.TokenTTL)
		}
	})

	t.Run("ignores an unparseable ttl", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/flowly")
		t.Setenv("TOKEN_SECRET", "s3cret")
		t.Setenv("TOKEN_TTL", "soon")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.TokenTTL != 24*time.Hour {
			t.Errorf("TokenTTL = %v, want the 24h fallback", cfg.TokenTTL)
		}
	})
}
