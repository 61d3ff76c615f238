package models

// GenerationOptions tunes a single LLM call. Zero values mean provider defaults.
type GenerationOptions struct {
	Task        string
	System      string
	Temperature float64
	TopP        float64
	MaxTokens   int
}

const (
	TaskEvaluation = "evaluation"
	TaskQuestions  = "questions"
)

type GenerationResponse struct {
	Content   string             `json:"content"`
	RequestID string             `json:"request_id"`
	Metadata  GenerationMetadata `json:"metadata"`
}

type GenerationMetadata struct {
	ProcessingTime int    `json:"processing_time_ms"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
}
