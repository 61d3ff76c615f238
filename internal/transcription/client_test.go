package transcription

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", server.URL+"/")
}

func TestClientUpload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/upload" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "test-key" {
			t.Errorf("missing api key header")
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "RIFF" {
			t.Errorf("unexpected body %q", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn/audio"})
	})

	url, err := client.Upload(context.Background(), strings.NewReader("RIFF"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if url != "https://cdn/audio" {
		t.Fatalf("unexpected upload url %s", url)
	}
}

func TestClientUploadFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid API key"})
	})

	_, err := client.Upload(context.Background(), strings.NewReader("x"))
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.StatusCode != http.StatusUnauthorized || provErr.Message != "Invalid API key" || provErr.Op != "upload" {
		t.Fatalf("unexpected provider error %+v", provErr)
	}
}

func TestClientSubmitAndGet(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/transcript":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["audio_url"] != "https://cdn/audio" {
				t.Errorf("unexpected audio_url %q", body["audio_url"])
			}
			json.NewEncoder(w).Encode(map[string]string{"id": "tr-1", "status": "queued"})
		case r.Method == http.MethodGet && r.URL.Path == "/transcript/tr-1":
			json.NewEncoder(w).Encode(map[string]string{"id": "tr-1", "status": "error", "error": "audio too short"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	id, err := client.Submit(context.Background(), "https://cdn/audio")
	if err != nil || id != "tr-1" {
		t.Fatalf("Submit returned %q, %v", id, err)
	}

	transcript, err := client.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if transcript.Status != StatusFailed || transcript.Error != "audio too short" {
		t.Fatalf("expected provider error status to normalise to failed, got %+v", transcript)
	}
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[Status]Status{
		"completed":  StatusCompleted,
		"error":      StatusFailed,
		"failed":     StatusFailed,
		"queued":     StatusQueued,
		"processing": StatusProcessing,
		"":           StatusProcessing,
	}
	for in, want := range cases {
		if got := normalizeStatus(in); got != want {
			t.Fatalf("normalizeStatus(%q) = %q, expected %q", in, got, want)
		}
	}
}
