// Package config loads the lookup server's settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig holds lookup server settings.
type ServerConfig struct {
	Port          string `env:"PORT" envDefault:"8080"`
	CardsDataPath string `env:"CARDS_DATA_PATH" envDefault:"cached_translations.json"`
	// CardsDataURL is fetched once when CardsDataPath does not exist yet.
	CardsDataURL string   `env:"CARDS_DATA_URL" envDefault:"https://github.com/deabbo/MTGAPI_Ko/raw/main/cards_data_for_api.json"`
	CORSOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	// RateLimitRPS of 0 disables rate limiting.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
	EnableReload   bool    `env:"ENABLE_RELOAD" envDefault:"false"`
	GinMode        string  `env:"GIN_MODE" envDefault:"release"`
	// ReloadInterval of 0 disables watching the document for changes.
	ReloadInterval time.Duration `env:"RELOAD_INTERVAL" envDefault:"0s"`
}

// LoadServer parses ServerConfig from the environment.
func LoadServer() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RateLimitRPS < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %v", cfg.RateLimitRPS)
	}
	if cfg.ReloadInterval < 0 {
		return nil, fmt.Errorf("RELOAD_INTERVAL must not be negative, got %v", cfg.ReloadInterval)
	}
	if cfg.RateLimitBurst < 1 {
		cfg.RateLimitBurst = 1
	}
	return &cfg, nil
}
