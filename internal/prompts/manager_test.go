package prompts

import (
	"strings"
	"testing"
)

func TestPromptManagerEvaluate(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager error: %v", err)
	}

	data := map[string]string{
		"Question":        "What is a goroutine?",
		"Answer":          "A lightweight thread",
		"Experience":      "intermediate",
		"DifficultyLevel": "medium",
		"Subject":         "programming",
		"Technology":      "Go",
	}
	prompt, err := pm.BuildPrompt(Evaluate, data)
	if err != nil {
		t.Fatalf("BuildPrompt error: %v", err)
	}
	if !containsAll(prompt, []string{"What is a goroutine?", "A lightweight thread", "specializing in programming and Go", `"score": "X/10"`}) {
		t.Fatalf("prompt did not contain expected values: %s", prompt)
	}
	if pm.System(Evaluate) != "" {
		t.Fatalf("expected no system message for evaluation")
	}
}

func TestPromptManagerQuestions(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager error: %v", err)
	}

	data := map[string]interface{}{
		"NumberOfQuestions": 3,
		"Position":          "Backend Engineer",
		"Technology":        "Go",
		"InterviewType":     "technical",
		"Experience":        "3",
		"DifficultyLevel":   "hard",
		"InterviewDuration": 45,
		"FocusAreas":        "",
	}
	prompt, err := pm.BuildPrompt(Questions, data)
	if err != nil {
		t.Fatalf("BuildPrompt error: %v", err)
	}
	if !containsAll(prompt, []string{"Generate 3 interview questions", "Backend Engineer", "45 minute"}) {
		t.Fatalf("prompt did not contain expected values: %s", prompt)
	}
	if strings.Contains(prompt, "Focus Areas") {
		t.Fatalf("focus areas should be omitted when empty: %s", prompt)
	}

	data["FocusAreas"] = "concurrency"
	prompt, _ = pm.BuildPrompt(Questions, data)
	if !strings.Contains(prompt, "Focus primarily on: concurrency") {
		t.Fatalf("expected focus areas in prompt: %s", prompt)
	}
	if !strings.Contains(pm.System(Questions), "JSON array") {
		t.Fatalf("expected questions system message, got %q", pm.System(Questions))
	}
}

func TestPromptManagerErrors(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager error: %v", err)
	}

	if _, err := pm.BuildPrompt("unknown", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
	if _, err := pm.BuildPrompt(Evaluate, map[string]string{"Question": "q"}); err == nil {
		t.Fatal("expected error for missing template data")
	}
	if got := pm.GetTemplates(); len(got) != 2 || got[0] != Evaluate || got[1] != Questions {
		t.Fatalf("unexpected templates %v", got)
	}
}

func containsAll(haystack string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}
