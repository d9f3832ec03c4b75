package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds server configuration loaded from the environment
type Config struct {
	Host        string `env:"TILETALLY_HOST" envDefault:""`
	Port        int    `env:"TILETALLY_PORT" envDefault:"8080"`
	StorageType string `env:"TILETALLY_STORAGE" envDefault:"memory"`
	RedisURL    string `env:"TILETALLY_REDIS_URL" envDefault:"redis://localhost:6379"`
	LogLevel    string `env:"TILETALLY_LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
