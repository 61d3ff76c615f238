package llm

import (
	"context"

	"interviewai/internal/models"
)

// defines the interface for LLM providers
type Provider interface {
	GenerateContent(ctx context.Context, prompt string, requestID string, opts models.GenerationOptions) (*models.GenerationResponse, error)
	GetProviderName() string
}

// represents an error from an LLM provider
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Common error codes shared by providers
const (
	ErrCodeAPIKey       = "invalid_api_key"
	ErrCodeRateLimit    = "rate_limit_exceeded"
	ErrCodeServiceDown  = "service_unavailable"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"
)

// CodeForStatus maps an upstream HTTP status to a provider error code.
func CodeForStatus(status int) string {
	switch {
	case status == 401 || status == 403:
		return ErrCodeAPIKey
	case status == 429:
		return ErrCodeRateLimit
	case status == 400 || status == 422:
		return ErrCodeInvalidInput
	case status == 408 || status == 504:
		return ErrCodeTimeout
	default:
		return ErrCodeServiceDown
	}
}
