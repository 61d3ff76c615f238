package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"interviewai/internal/llm"
	"interviewai/internal/models"
)

func newStubClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&Config{
		APIKey:        "test-key",
		BaseURL:       server.URL,
		EvalModel:     "eval-model",
		QuestionModel: "question-model",
		Referer:       "http://localhost:5000",
		Title:         "interview-ai",
		Timeout:       5 * time.Second,
	})
}

func reply(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": content}}},
	})
}

func TestClientGenerateContentSuccess(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if got := r.Header.Get("X-Title"); got != "interview-ai" {
			t.Errorf("unexpected X-Title %q", got)
		}
		var body chatRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if body.Model != "eval-model" {
			t.Errorf("expected evaluation model, got %s", body.Model)
		}
		if len(body.Messages) != 1 || body.Messages[0].Role != "user" {
			t.Errorf("expected a single user message, got %+v", body.Messages)
		}
		reply(w, `{"score":"8/10"}`)
	})

	resp, err := client.GenerateContent(context.Background(), "prompt", "req-1", models.GenerationOptions{Task: models.TaskEvaluation})
	if err != nil {
		t.Fatalf("GenerateContent returned error: %v", err)
	}
	if resp.Content != `{"score":"8/10"}` {
		t.Fatalf("unexpected content %q", resp.Content)
	}
	if resp.RequestID != "req-1" || resp.Metadata.Provider != "openrouter" || resp.Metadata.Model != "eval-model" {
		t.Fatalf("unexpected metadata %+v", resp)
	}
}

func TestClientGenerateContentQuestionTask(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body chatRequest
		json.NewDecoder(r.Body).Decode(&body)
		if body.Model != "question-model" {
			t.Errorf("expected question model, got %s", body.Model)
		}
		if len(body.Messages) != 2 || body.Messages[0].Role != "system" {
			t.Errorf("expected system + user messages, got %+v", body.Messages)
		}
		if body.Temperature != 0.7 || body.MaxTokens != 2000 {
			t.Errorf("sampling options not forwarded: %+v", body)
		}
		reply(w, "[]")
	})

	_, err := client.GenerateContent(context.Background(), "prompt", "req", models.GenerationOptions{
		Task:        models.TaskQuestions,
		System:      "system",
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		t.Fatalf("GenerateContent returned error: %v", err)
	}
}

func TestClientGenerateContentErrors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		code    string
	}{
		{
			name:    "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) { http.Error(w, "bad key", http.StatusUnauthorized) },
			code:    llm.ErrCodeAPIKey,
		},
		{
			name:    "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) { http.Error(w, "slow down", http.StatusTooManyRequests) },
			code:    llm.ErrCodeRateLimit,
		},
		{
			name: "error body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "upstream down", "code": 502}})
			},
			code: llm.ErrCodeServiceDown,
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
			},
			code: llm.ErrCodeInvalidInput,
		},
		{
			name:    "empty content",
			handler: func(w http.ResponseWriter, r *http.Request) { reply(w, "   ") },
			code:    llm.ErrCodeInvalidInput,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newStubClient(t, tc.handler)
			_, err := client.GenerateContent(context.Background(), "prompt", "req", models.GenerationOptions{})
			var provErr *llm.ProviderError
			if !errors.As(err, &provErr) {
				t.Fatalf("expected ProviderError, got %v", err)
			}
			if provErr.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, provErr.Code)
			}
		})
	}
}

func TestNewConfig(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error when API key is missing")
	}

	t.Setenv("OPENROUTER_API_KEY", "key")
	t.Setenv("OPENROUTER_EVAL_MODEL", "")
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.EvalModel != "deepseek/deepseek-r1-0528-qwen3-8b:free" || cfg.QuestionModel != "mistralai/mistral-7b-instruct" {
		t.Fatalf("unexpected default models: %+v", cfg)
	}
	if cfg.BaseURL != "https://openrouter.ai/api/v1" {
		t.Fatalf("unexpected base url %s", cfg.BaseURL)
	}

	t.Setenv("OPENROUTER_TIMEOUT", "forever")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error for malformed timeout")
	}
}

func TestGetProviderName(t *testing.T) {
	if (&Client{}).GetProviderName() != "openrouter" {
		t.Fatal("expected provider name openrouter")
	}
}
