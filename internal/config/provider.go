package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ProviderConfig controls the question generation provider.
// An empty APIKey runs the game offline on the built-in question bank.
type ProviderConfig struct {
	APIKey  string        `env:"MATHQUEST_API_KEY"`
	Model   string        `env:"MATHQUEST_MODEL"    envDefault:"gpt-4o-mini"`
	BaseURL string        `env:"MATHQUEST_BASE_URL" envDefault:"https://api.openai.com/v1"`
	Timeout time.Duration `env:"MATHQUEST_TIMEOUT"  envDefault:"30s"`
}

// Online reports whether a provider key is configured.
func (c ProviderConfig) Online() bool {
	return c.APIKey != ""
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadProvider reads provider settings from the environment.
func LoadProvider() (ProviderConfig, error) {
	var cfg ProviderConfig
	if err := ParseEnv(&cfg); err != nil {
		return ProviderConfig{}, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return cfg, nil
}
