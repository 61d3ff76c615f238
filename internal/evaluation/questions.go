package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"interviewai/internal/llm"
	"interviewai/internal/models"
	"interviewai/internal/prompts"
)

var (
	jsonArrayPattern = regexp.MustCompile(`\[[\s\S]*\]`)
	fencePattern     = regexp.MustCompile("```(?:json)?\\s*")
)

// sampling used for question generation
const (
	questionTemperature = 0.7
	questionTopP        = 0.9
	questionMaxTokens   = 2000
)

// Generator asks the LLM for a batch of interview questions.
type Generator struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewGenerator(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Generator {
	return &Generator{
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
	}
}

func (g *Generator) Generate(ctx context.Context, info models.CandidateInfo) (*models.GenerateQuestionsResponse, error) {
	prompt, err := g.prompts.BuildPrompt(prompts.Questions, info)
	if err != nil {
		return nil, fmt.Errorf("build question prompt: %w", err)
	}

	requestID := uuid.New().String()
	resp, err := g.provider.GenerateContent(ctx, prompt, requestID, models.GenerationOptions{
		Task:        models.TaskQuestions,
		System:      g.prompts.System(prompts.Questions),
		Temperature: questionTemperature,
		TopP:        questionTopP,
		MaxTokens:   questionMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	questions, ok := ParseQuestions(resp.Content, info)
	if !ok {
		g.logger.Warn("Question generation reply was not a JSON array, returning placeholders",
			zap.String("request_id", requestID),
			zap.String("provider", g.provider.GetProviderName()))
		questions = PlaceholderQuestions(info)
	}

	return &models.GenerateQuestionsResponse{
		Success:   true,
		Questions: questions,
		Metadata: models.QuestionsMetadata{
			Experience:        info.Experience,
			Technology:        info.Technology,
			Position:          info.Position,
			InterviewType:     info.InterviewType,
			DifficultyLevel:   info.DifficultyLevel,
			NumberOfQuestions: len(questions),
			FocusAreas:        info.FocusAreas,
			InterviewDuration: info.InterviewDuration,
			Fallback:          !ok,
		},
	}, nil
}

type rawQuestion struct {
	ID         flexNumber `json:"id"`
	Category   string     `json:"category"`
	Question   string     `json:"question"`
	Difficulty string     `json:"difficulty"`
}

// ParseQuestions extracts the first JSON array from reply, filling missing
// fields from info. ok is false when no array could be decoded.
func ParseQuestions(reply string, info models.CandidateInfo) ([]models.GeneratedQuestion, bool) {
	cleaned := strings.TrimSpace(fencePattern.ReplaceAllString(reply, ""))
	match := jsonArrayPattern.FindString(cleaned)
	if match == "" {
		return nil, false
	}

	var raw []rawQuestion
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, false
	}

	questions := make([]models.GeneratedQuestion, 0, len(raw))
	for i, q := range raw {
		item := models.GeneratedQuestion{
			ID:         int(q.ID),
			Category:   q.Category,
			Question:   q.Question,
			Difficulty: q.Difficulty,
		}
		if item.ID == 0 {
			item.ID = i + 1
		}
		if item.Category == "" {
			item.Category = info.Technology
		}
		if item.Question == "" {
			item.Question = "Question not generated properly"
		}
		if item.Difficulty == "" {
			item.Difficulty = info.DifficultyLevel
		}
		questions = append(questions, item)
	}
	return questions, true
}

// PlaceholderQuestions returns numbered stand-ins asking the user to regenerate.
func PlaceholderQuestions(info models.CandidateInfo) []models.GeneratedQuestion {
	questions := make([]models.GeneratedQuestion, info.NumberOfQuestions)
	for i := range questions {
		questions[i] = models.GeneratedQuestion{
			ID:       i + 1,
			Category: info.Technology,
			Question: fmt.Sprintf("Please regenerate - Question %d for %s %s developer with %s years experience at %s level",
				i+1, info.Position, info.Technology, info.Experience, info.DifficultyLevel),
			Difficulty: info.DifficultyLevel,
		}
	}
	return questions
}
