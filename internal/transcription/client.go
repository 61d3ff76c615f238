package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Transcript is the provider's view of one transcription job.
type Transcript struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

// ProviderError wraps a failed call to the speech-to-text provider.
type ProviderError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	msg := "assemblyai " + e.Op + " failed"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Client is a minimal AssemblyAI v2 REST client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload streams audio to the provider and returns its hosted URL.
func (c *Client) Upload(ctx context.Context, audio io.Reader) (string, error) {
	var out struct {
		UploadURL string `json:"upload_url"`
	}
	if err := c.do(ctx, "upload", http.MethodPost, "/upload", "application/octet-stream", audio, &out); err != nil {
		return "", err
	}
	if out.UploadURL == "" {
		return "", &ProviderError{Op: "upload", Message: "no upload_url in response"}
	}
	return out.UploadURL, nil
}

// Submit starts a transcription job for a previously uploaded file.
func (c *Client) Submit(ctx context.Context, audioURL string) (string, error) {
	body, err := json.Marshal(map[string]string{"audio_url": audioURL})
	if err != nil {
		return "", &ProviderError{Op: "submit", Err: err}
	}
	var out Transcript
	if err := c.do(ctx, "submit", http.MethodPost, "/transcript", "application/json", bytes.NewReader(body), &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", &ProviderError{Op: "submit", Message: "no transcript id in response"}
	}
	return out.ID, nil
}

func (c *Client) Get(ctx context.Context, id string) (*Transcript, error) {
	var out Transcript
	if err := c.do(ctx, "poll", http.MethodGet, "/transcript/"+id, "", nil, &out); err != nil {
		return nil, err
	}
	out.Status = normalizeStatus(out.Status)
	return &out, nil
}

// the v2 API reports failures as "error"
func normalizeStatus(s Status) Status {
	switch strings.ToLower(string(s)) {
	case "completed":
		return StatusCompleted
	case "error", "failed":
		return StatusFailed
	case "queued":
		return StatusQueued
	default:
		return StatusProcessing
	}
}

func (c *Client) do(ctx context.Context, op, method, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &ProviderError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ProviderError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ProviderError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode >= 400 {
		return &ProviderError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ProviderError{Op: op, StatusCode: resp.StatusCode, Message: "invalid response body", Err: err}
	}
	return nil
}

func errorMessage(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}
