// Package config loads service settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port      string `env:"QUARTO_PORT" envDefault:"8080"`
	DBPath    string `env:"QUARTO_DB_PATH" envDefault:"quarto.db"`
	LogLevel  string `env:"QUARTO_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"QUARTO_LOG_FORMAT" envDefault:"text"`
}

// Load reads a .env file when present, then parses the environment.
func Load() (Config, error) {
	// The .env file is optional; a missing file is not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
