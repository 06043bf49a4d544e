package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Authentication modes.
const (
	AuthModeDemo     = "demo"
	AuthModePassword = "password"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config contains application configuration parameters.
type Config struct {
	LogLevel  int    `env:"LOG_LEVEL" envDefault:"4"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	Auth      Auth   `envPrefix:"AUTH_"`
	JWT       JWT    `envPrefix:"JWT_"`
	Ledger    Ledger `envPrefix:"LEDGER_"`
	Seed      Seed   `envPrefix:"SEED_"`
}

// Auth contains identity provider parameters.
type Auth struct {
	Mode       string        `env:"MODE" envDefault:"demo"`
	LoginDelay time.Duration `env:"LOGIN_DELAY" envDefault:"0s"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`
}

// JWT contains session token parameters.
type JWT struct {
	Secret string `env:"SECRET" envDefault:"devsecret"`
}

// Ledger contains application ledger parameters.
type Ledger struct {
	ApplyDelay time.Duration `env:"APPLY_DELAY" envDefault:"0s"`
}

// Seed contains start-up dataset parameters.
type Seed struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	Path    string `env:"PATH"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Auth.Mode {
	case AuthModeDemo, AuthModePassword:
	default:
		return fmt.Errorf("unsupported auth mode %q", c.Auth.Mode)
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}

	if c.Auth.LoginDelay < 0 || c.Ledger.ApplyDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}

	return nil
}
