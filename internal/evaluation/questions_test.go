package evaluation

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"interviewai/internal/models"
)

func candidate() models.CandidateInfo {
	return models.CandidateInfo{
		Experience:        "3",
		Technology:        "Go",
		Position:          "Backend Engineer",
		InterviewType:     "technical",
		DifficultyLevel:   "medium",
		NumberOfQuestions: 2,
		InterviewDuration: 30,
	}
}

func TestParseQuestionsFillsDefaults(t *testing.T) {
	reply := "```json\n[{\"id\":1,\"category\":\"Go\",\"question\":\"What is a slice?\",\"difficulty\":\"easy\"},{\"question\":\"\"}]\n```"
	questions, ok := ParseQuestions(reply, candidate())
	if !ok {
		t.Fatal("expected array to parse")
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Question != "What is a slice?" || questions[0].Difficulty != "easy" {
		t.Fatalf("unexpected first question %+v", questions[0])
	}
	second := questions[1]
	if second.ID != 2 || second.Category != "Go" || second.Difficulty != "medium" || second.Question != "Question not generated properly" {
		t.Fatalf("expected defaults on second question, got %+v", second)
	}
}

func TestParseQuestionsRejectsNonArray(t *testing.T) {
	if _, ok := ParseQuestions("no questions today", candidate()); ok {
		t.Fatal("expected parse failure")
	}
	if _, ok := ParseQuestions("[not json]", candidate()); ok {
		t.Fatal("expected parse failure for invalid array")
	}
}

func TestPlaceholderQuestions(t *testing.T) {
	questions := PlaceholderQuestions(candidate())
	if len(questions) != 2 {
		t.Fatalf("expected 2 placeholders, got %d", len(questions))
	}
	want := "Please regenerate - Question 2 for Backend Engineer Go developer with 3 years experience at medium level"
	if questions[1].Question != want {
		t.Fatalf("unexpected placeholder %q", questions[1].Question)
	}
}

func TestGeneratorGenerate(t *testing.T) {
	var gotOpts models.GenerationOptions
	provider := &fakeProvider{generateFn: func(_ context.Context, prompt, _ string, opts models.GenerationOptions) (*models.GenerationResponse, error) {
		gotOpts = opts
		if !strings.Contains(prompt, "Generate 2 interview questions") {
			t.Errorf("unexpected prompt %s", prompt)
		}
		return &models.GenerationResponse{Content: `[{"id":1,"category":"Go","question":"Explain interfaces","difficulty":"medium"}]`}, nil
	}}

	resp, err := NewGenerator(provider, newPromptManager(t), zap.NewNop()).Generate(context.Background(), candidate())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !resp.Success || len(resp.Questions) != 1 || resp.Metadata.NumberOfQuestions != 1 || resp.Metadata.Fallback {
		t.Fatalf("unexpected response %+v", resp)
	}
	if gotOpts.Task != models.TaskQuestions || gotOpts.Temperature != 0.7 || gotOpts.TopP != 0.9 || gotOpts.MaxTokens != 2000 {
		t.Fatalf("unexpected generation options %+v", gotOpts)
	}
	if gotOpts.System == "" {
		t.Fatal("expected system message for question generation")
	}
}

func TestGeneratorFallsBackToPlaceholders(t *testing.T) {
	resp, err := NewGenerator(&fakeProvider{generateFn: reply("sorry")}, newPromptManager(t), zap.NewNop()).Generate(context.Background(), candidate())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !resp.Metadata.Fallback || len(resp.Questions) != 2 {
		t.Fatalf("expected placeholder questions, got %+v", resp)
	}
}
