package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "STORE", "DATABASE_URL", "MONGO_URI", "TOKEN_TTL", "AUTH_RATE_LIMIT_RPS", "AUTH_RATE_LIMIT_BURST", "PORT"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Env != "dev" || cfg.Store != StoreMemory || cfg.Port != "8080" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Fatalf("TokenTTL = %v", cfg.TokenTTL)
	}
	if cfg.AuthRateLimitRPS != 1 || cfg.AuthRateLimitBurst != 5 {
		t.Fatalf("rate limit defaults = %v/%v", cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("STORE", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.test, https://b.test ,")
	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("Env = %q", cfg.Env)
	}
	if cfg.Store != StoreMongo {
		t.Fatalf("Store = %q", cfg.Store)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("TokenTTL = %v", cfg.TokenTTL)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "https://b.test" {
		t.Fatalf("CORS = %v", cfg.CORSAllowOrigin)
	}
}

func TestNormalizeStore(t *testing.T) {
	cases := []struct {
		raw, db, mongo, want string
	}{
		{"", "", "", StoreMemory},
		{"", "postgres://x", "mongodb://y", StorePostgres},
		{"", "", "mongodb://y", StoreMongo},
		{"MongoDB", "postgres://x", "", StoreMongo},
		{"memory", "postgres://x", "", StoreMemory},
		{"pg", "", "", StorePostgres},
	}
	for _, tc := range cases {
		if got := normalizeStore(tc.raw, tc.db, tc.mongo); got != tc.want {
			t.Fatalf("normalizeStore(%q, %q, %q) = %q, want %q", tc.raw, tc.db, tc.mongo, got, tc.want)
		}
	}
}
