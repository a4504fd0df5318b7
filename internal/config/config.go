package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Backend
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://127.0.0.1:8000"`

	// Credentials for the startup login
	Email    string `env:"MOVECHAT_EMAIL,required"`
	Password string `env:"MOVECHAT_PASSWORD,required"`

	// Geolocation
	GeolocationEnabled bool   `env:"GEOLOCATION_ENABLED" envDefault:"true"`
	GeolocationURL     string `env:"GEOLOCATION_URL" envDefault:"http://ip-api.com/json"`

	// Logging. The TUI owns the terminal, so logs go to a file when set and
	// are dropped otherwise.
	LogFile string `env:"LOG_FILE"`
	Debug   bool   `env:"DEBUG" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
