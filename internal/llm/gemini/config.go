package gemini

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const defaultModel = "gemini-2.5-flash"

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint; empty uses the SDK default.
	BaseURL string
	Timeout time.Duration
}

// NewConfig reads GEMINI_API_KEY, GEMINI_MODEL, GEMINI_BASE_URL and GEMINI_TIMEOUT.
func NewConfig() (*Config, error) {
	cfg := &Config{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:   os.Getenv("GEMINI_MODEL"),
		BaseURL: os.Getenv("GEMINI_BASE_URL"),
		Timeout: 60 * time.Second,
	}
	if cfg.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if raw := os.Getenv("GEMINI_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("GEMINI_TIMEOUT must be a positive duration, got %q", raw)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}
