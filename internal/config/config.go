package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	DBPath   string `env:"DB_PATH" envDefault:"./dev.db"`
	AppEnv   string `env:"APP_ENV" envDefault:"dev"`
	Currency string `env:"CURRENCY" envDefault:"BRL"`
}

// Load reads the process environment (after a best-effort dotenv preload for
// local development) and returns a populated Config.
func Load() (Config, error) {
	// We don't fail if the file is missing; production should use real env
	// injection.
	_ = loadDotEnv(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment config: %w", err)
	}

	return cfg, nil
}

// IsDev reports whether the app runs in development mode, where migrations
// and seed data are applied on boot.
func (c Config) IsDev() bool {
	return c.AppEnv == "dev"
}
