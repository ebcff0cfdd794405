/*
Package config
File: config.go
Description:
    Server configuration loaded from environment variables.
    The static item catalog lives in its own YAML file; this only says where.
*/

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds process-level settings.
type Config struct {
	Addr         string `env:"HARVEST_CRAFT_ADDR"         envDefault:":8081"`
	CatalogPath  string `env:"HARVEST_CRAFT_CATALOG_PATH" envDefault:"catalog.yaml"`
	WSSendBuffer int    `env:"HARVEST_CRAFT_WS_BUFFER"    envDefault:"256"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the server configuration with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.WSSendBuffer <= 0 {
		return Config{}, fmt.Errorf("HARVEST_CRAFT_WS_BUFFER must be positive, got %d", cfg.WSSendBuffer)
	}
	return cfg, nil
}
