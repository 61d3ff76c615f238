package evaluation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"interviewai/internal/llm"
	"interviewai/internal/models"
	"interviewai/internal/prompts"
)

// Evaluator scores a transcribed answer with the configured LLM provider.
type Evaluator struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewEvaluator(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
	}
}

type evaluatePromptData struct {
	Question        string
	Answer          string
	Experience      string
	DifficultyLevel string
	Subject         string
	Technology      string
}

// Evaluate returns an error only when the provider call itself fails;
// unparseable replies come back as ModeFallback results.
func (e *Evaluator) Evaluate(ctx context.Context, question, answer string, gc models.GenerationContext) (*Result, error) {
	prompt, err := e.prompts.BuildPrompt(prompts.Evaluate, evaluatePromptData{
		Question:        question,
		Answer:          answer,
		Experience:      gc.Experience,
		DifficultyLevel: gc.DifficultyLevel,
		Subject:         gc.Subject,
		Technology:      gc.Technology,
	})
	if err != nil {
		return nil, fmt.Errorf("build evaluation prompt: %w", err)
	}

	requestID := uuid.New().String()
	resp, err := e.provider.GenerateContent(ctx, prompt, requestID, models.GenerationOptions{
		Task:   models.TaskEvaluation,
		System: e.prompts.System(prompts.Evaluate),
	})
	if err != nil {
		return nil, err
	}

	result := Parse(resp.Content)
	if !result.Structured() {
		e.logger.Warn("Evaluation reply was not valid JSON, using heuristic score",
			zap.String("request_id", requestID),
			zap.String("provider", e.provider.GetProviderName()),
			zap.String("score", result.Detail.Score))
	}
	return &result, nil
}

// ProviderName reports which LLM backs the evaluator.
func (e *Evaluator) ProviderName() string {
	return e.provider.GetProviderName()
}
