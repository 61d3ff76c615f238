package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"interviewai/internal/llm"
	"interviewai/internal/models"
)

// Client talks to the OpenRouter chat-completions API
type Client struct {
	http   *http.Client
	config *Config
}

func NewClient(config *Config) *Client {
	return &Client{
		http:   &http.Client{Timeout: config.Timeout},
		config: config,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

func (c *Client) modelFor(task string) string {
	if task == models.TaskQuestions {
		return c.config.QuestionModel
	}
	return c.config.EvalModel
}

func (c *Client) GenerateContent(ctx context.Context, prompt string, requestID string, opts models.GenerationOptions) (*models.GenerationResponse, error) {
	startTime := time.Now()
	model := c.modelFor(opts.Task)

	messages := make([]chatMessage, 0, 2)
	if opts.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: opts.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return nil, &llm.ProviderError{Provider: "openrouter", Code: llm.ErrCodeInvalidInput, Message: "Failed to encode request", Err: err}
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &llm.ProviderError{Provider: "openrouter", Code: llm.ErrCodeInvalidInput, Message: "Failed to build request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", c.config.Referer)
	req.Header.Set("X-Title", c.config.Title)

	resp, err := c.http.Do(req)
	if err != nil {
		code := llm.ErrCodeServiceDown
		if errors.Is(err, context.DeadlineExceeded) {
			code = llm.ErrCodeTimeout
		}
		return nil, &llm.ProviderError{Provider: "openrouter", Code: code, Message: "Request to OpenRouter failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &llm.ProviderError{Provider: "openrouter", Code: llm.ErrCodeServiceDown, Message: "Failed to read response", Err: err}
	}
	if resp.StatusCode >= 400 {
		return nil, &llm.ProviderError{
			Provider: "openrouter",
			Code:     llm.CodeForStatus(resp.StatusCode),
			Message:  fmt.Sprintf("OpenRouter returned status %d", resp.StatusCode),
			Err:      errors.New(strings.TrimSpace(string(raw))),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &llm.ProviderError{Provider: "openrouter", Code: llm.ErrCodeServiceDown, Message: "Failed to decode response", Err: err}
	}
	if parsed.Error != nil {
		return nil, &llm.ProviderError{
			Provider: "openrouter",
			Code:     llm.CodeForStatus(parsed.Error.Code),
			Message:  parsed.Error.Message,
		}
	}
	if len(parsed.Choices) == 0 {
		return nil, &llm.ProviderError{Provider: "openrouter", Code: llm.ErrCodeInvalidInput, Message: "No choices returned"}
	}

	content := parsed.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return nil, &llm.ProviderError{Provider: "openrouter", Code: llm.ErrCodeInvalidInput, Message: "Empty response generated"}
	}

	if parsed.Model != "" {
		model = parsed.Model
	}
	return &models.GenerationResponse{
		Content:   content,
		RequestID: requestID,
		Metadata: models.GenerationMetadata{
			ProcessingTime: int(time.Since(startTime).Milliseconds()),
			Provider:       "openrouter",
			Model:          model,
		},
	}, nil
}

func (c *Client) GetProviderName() string {
	return "openrouter"
}
