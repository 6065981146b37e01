package generation

import (
	"fmt"
	"time"

	"copydesk/pkg/config"
)

// Config holds the tunables shared by all provider adapters.
// Loaded from environment variables with warn-and-default validation.
type Config struct {
	// Model is the provider model identifier.
	Model string

	// MaxTokens is the default maximum number of tokens for a response.
	// Article bodies are large; the default leaves room for ~800+ words of
	// HTML plus FAQ payload.
	MaxTokens int

	// Temperature is the default sampling temperature.
	Temperature float64

	// Timeout bounds a single generation call. A call that overruns is
	// reported as ErrTimeout and any late result is discarded.
	Timeout time.Duration
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2], got %v", c.Temperature)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// LoadConfig loads generation settings from the environment.
//
// Environment variables:
//   - GENERATION_MODEL: provider model identifier (default per adapter)
//   - GENERATION_MAX_TOKENS: response token budget (default: 8192)
//   - GENERATION_TEMPERATURE: sampling temperature (default: 0.7)
//   - GENERATION_TIMEOUT: per-call deadline (default: 120s)
func LoadConfig(defaultModel string) Config {
	return Config{
		Model:       config.GetEnvString("GENERATION_MODEL", defaultModel),
		MaxTokens:   config.GetEnvInt("GENERATION_MAX_TOKENS", 8192),
		Temperature: config.GetEnvFloat("GENERATION_TEMPERATURE", 0.7),
		Timeout:     config.GetEnvDuration("GENERATION_TIMEOUT", 120*time.Second),
	}
}
