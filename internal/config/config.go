package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters, sourced from the
// environment. The signing secret has no default on purpose: it must be
// injected, never embedded.
type Config struct {
	Addr         string        `env:"ADDR" envDefault:":8080"`
	DatabasePath string        `env:"DATABASE_PATH" envDefault:"civreg.db"`
	JWTSecret    string        `env:"JWT_SECRET,notEmpty"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	BcryptCost   int           `env:"BCRYPT_COST" envDefault:"12"`
	LogLevel     int           `env:"LOG_LEVEL" envDefault:"0"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.BcryptCost < 4 || cfg.BcryptCost > 14 {
		return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cfg.BcryptCost)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}

	return &cfg, nil
}
