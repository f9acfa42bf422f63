// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable the server reads at boot. GeminiAPIKey has no
// default on purpose: starting without a credential for the generation
// provider is fatal.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	GeminiAPIKey  string        `envconfig:"GEMINI_API_KEY" required:"true"`
	GeminiModel   string        `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	GeminiBaseURL string        `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	GeminiRPS     int           `envconfig:"GEMINI_RPS" default:"2"`
	GeminiTimeout time.Duration `envconfig:"GEMINI_TIMEOUT" default:"30s"`

	GenerateAttempts int           `envconfig:"GENERATE_ATTEMPTS" default:"3"`
	BackoffBase      time.Duration `envconfig:"BACKOFF_BASE" default:"1s"`

	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"60s"`
	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"50"`
	RateLimiterTTL  time.Duration `envconfig:"RATE_LIMITER_TTL" default:"1h"`

	CookieMaxAge time.Duration `envconfig:"COOKIE_MAX_AGE" default:"2h"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"3h"`

	WordBankPath string `envconfig:"WORD_BANK_PATH" default:"data/wordbank.json"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}
