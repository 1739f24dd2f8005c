// Package config loads process configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration of the game server.
type Config struct {
	Port     string `env:"PORT"      envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	DBPath   string `env:"DB_PATH"   envDefault:"./data/whosthat.db"`

	CatalogBaseURL string        `env:"CATALOG_BASE_URL" envDefault:"https://pokeapi.co"`
	CatalogMinID   int           `env:"CATALOG_MIN_ID"   envDefault:"1"`
	CatalogMaxID   int           `env:"CATALOG_MAX_ID"   envDefault:"151"`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT"  envDefault:"10s"`

	RevealDelay  time.Duration `env:"REVEAL_DELAY"  envDefault:"2s"`
	ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5175"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	if c.CatalogMinID < 1 {
		return errors.New("CATALOG_MIN_ID must be >= 1")
	}
	if c.CatalogMaxID < c.CatalogMinID {
		return fmt.Errorf("CATALOG_MAX_ID (%d) must be >= CATALOG_MIN_ID (%d)", c.CatalogMaxID, c.CatalogMinID)
	}
	if c.CatalogTimeout <= 0 {
		return errors.New("CATALOG_TIMEOUT must be positive")
	}
	if c.RevealDelay < 0 {
		return errors.New("REVEAL_DELAY must not be negative")
	}
	return nil
}
