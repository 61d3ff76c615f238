package openrouter

import (
	"errors"
	"os"
	"time"
)

// holds OpenRouter-specific configuration
type Config struct {
	APIKey        string
	BaseURL       string
	EvalModel     string
	QuestionModel string
	Referer       string
	Title         string
	Timeout       time.Duration
}

func NewConfig() (*Config, error) {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENROUTER_API_KEY environment variable is required")
	}

	timeout := 60 * time.Second
	if raw := os.Getenv("OPENROUTER_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.New("OPENROUTER_TIMEOUT must be a duration such as 60s")
		}
		timeout = parsed
	}

	return &Config{
		APIKey:        apiKey,
		BaseURL:       envOr("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		EvalModel:     envOr("OPENROUTER_EVAL_MODEL", "deepseek/deepseek-r1-0528-qwen3-8b:free"),
		QuestionModel: envOr("OPENROUTER_QUESTION_MODEL", "mistralai/mistral-7b-instruct"),
		Referer:       envOr("OPENROUTER_REFERER", "http://localhost:5000"),
		Title:         envOr("OPENROUTER_TITLE", "interview-ai"),
		Timeout:       timeout,
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
