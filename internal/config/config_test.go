package config

import (
	"testing"
)

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.CardsDataPath != "cached_translations.json" {
		t.Errorf("CardsDataPath = %q", cfg.CardsDataPath)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.RateLimitRPS != 0 || cfg.EnableReload {
		t.Errorf("rate limiting and reload should be off by default: %+v", cfg)
	}
}

func TestLoadServerFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CARDS_DATA_PATH", "/data/cards.json")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("RATE_LIMIT_BURST", "0")
	t.Setenv("ENABLE_RELOAD", "true")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}

	if cfg.Port != "9000" || cfg.CardsDataPath != "/data/cards.json" {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 1 || !cfg.EnableReload {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadServerRejectsNegativeRate(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "-1")
	if _, err := LoadServer(); err == nil {
		t.Error("LoadServer() should reject a negative rate")
	}
}
