// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration. Flags may override Players and Seed.
type Config struct {
	Players int    `env:"COUP_PLAYERS" envDefault:"4"`
	Seed    uint64 `env:"COUP_SEED"` // 0 picks a random seed

	OpenAIKey     string  `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string  `env:"OPENAI_BASE_URL"`
	Model         string  `env:"COUP_MODEL" envDefault:"gpt-4o-mini"`
	Temperature   float64 `env:"COUP_TEMPERATURE" envDefault:"0.3"`

	LogWindow       int           `env:"COUP_LOG_WINDOW" envDefault:"20"`
	MaxIdleTurns    int           `env:"COUP_MAX_IDLE_TURNS" envDefault:"4"`
	InterruptGrace  time.Duration `env:"COUP_INTERRUPT_GRACE" envDefault:"1s"`
	ResponseTimeout time.Duration `env:"COUP_RESPONSE_TIMEOUT" envDefault:"0s"`

	OTelEndpoint string `env:"COUP_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"COUP_OTEL_ENABLED" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
