package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port            string `env:"PORT" envDefault:"8080"`
	DBDSN           string `env:"DB_DSN" envDefault:"mandaladaka.db"`
	LogFile         string `env:"LOG_FILE" envDefault:"./mandaladaka.log"`
	JWTSecret       string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTLMinutes int    `env:"TOKEN_TTL_MINUTES" envDefault:"60"`
}

// Load parses configuration from the environment. Loaded once in main and
// injected downward; nothing reads the environment after startup.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s TOKEN_TTL_MINUTES=%d",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.TokenTTLMinutes)
	return cfg, nil
}
