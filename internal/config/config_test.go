package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("AI_PROVIDER", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Provider != "openrouter" {
		t.Fatalf("expected provider openrouter, got %s", cfg.Provider)
	}
	if cfg.Port != 5000 {
		t.Fatalf("expected default port 5000, got %d", cfg.Port)
	}
	if cfg.JWT.Expire.Duration() != 7*24*time.Hour {
		t.Fatalf("expected 7 day expiry, got %s", cfg.JWT.Expire.Duration())
	}
	if cfg.Transcription.PollInterval != 5*time.Second {
		t.Fatalf("expected 5s poll interval, got %s", cfg.Transcription.PollInterval)
	}
	if cfg.Interview.FreeLimit != 2 {
		t.Fatalf("expected free limit 2, got %d", cfg.Interview.FreeLimit)
	}
}

func TestLoadConfig_UnsupportedProvider(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("AI_PROVIDER", "unknown")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing JWT secret")
	}
}

func TestExpiryDecode(t *testing.T) {
	cases := map[string]time.Duration{
		"7d":  7 * 24 * time.Hour,
		"1d":  24 * time.Hour,
		"90m": 90 * time.Minute,
		"2h":  2 * time.Hour,
	}
	for input, want := range cases {
		var e Expiry
		if err := e.Decode(input); err != nil {
			t.Fatalf("Decode(%q) returned error: %v", input, err)
		}
		if e.Duration() != want {
			t.Fatalf("Decode(%q) = %s, expected %s", input, e.Duration(), want)
		}
	}

	var e Expiry
	if err := e.Decode("xd"); err == nil {
		t.Fatal("expected error for malformed day expiry")
	}
	if err := e.Decode("soon"); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORS: CORSConfig{AllowedOrigins: []string{" http://a ", "", "http://b"}}}
	got := cfg.CORSOrigins()
	if len(got) != 2 || got[0] != "http://a" || got[1] != "http://b" {
		t.Fatalf("unexpected origins: %v", got)
	}
}

func TestTranscriptionMaxWait(t *testing.T) {
	cases := []struct {
		name string
		cfg  TranscriptionConfig
		want time.Duration
	}{
		{"timeout shorter than polls", TranscriptionConfig{PollInterval: 5 * time.Second, MaxPolls: 120, Timeout: 2 * time.Minute}, 2 * time.Minute},
		{"polls shorter than timeout", TranscriptionConfig{PollInterval: 5 * time.Second, MaxPolls: 12, Timeout: 10 * time.Minute}, time.Minute},
		{"no timeout", TranscriptionConfig{PollInterval: 5 * time.Second, MaxPolls: 120}, 10 * time.Minute},
	}
	for _, tc := range cases {
		if got := tc.cfg.MaxWait(); got != tc.want {
			t.Fatalf("%s: MaxWait() = %s, expected %s", tc.name, got, tc.want)
		}
	}
}

func TestLoadConfig_NegativeTranscriptionTimeout(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TRANSCRIPTION_TIMEOUT", "-1s")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for negative transcription timeout")
	}
}
