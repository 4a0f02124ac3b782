package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all server configuration, populated from the environment
type Config struct {
	Host string `env:"HOST" envDefault:""`
	Port int    `env:"PORT" envDefault:"8080"`

	// StorageType selects the storage backend ("memory" or "redis")
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4.1-nano"`

	// Game rules
	TurnLimit         int `env:"TURN_LIMIT" envDefault:"5"`
	MaxMessageLength  int `env:"MAX_MESSAGE_LENGTH" envDefault:"250"`
	TransitionSeconds int `env:"TRANSITION_SECONDS" envDefault:"5"`
}

// Load reads configuration from a .env file (if present) and the
// environment. Environment variables win over .env entries.
func Load() (*Config, error) {
	// Missing .env is fine; the environment alone is a complete source
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TransitionDuration returns the phase-change countdown length
func (c *Config) TransitionDuration() time.Duration {
	return time.Duration(c.TransitionSeconds) * time.Second
}
