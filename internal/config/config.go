package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// app config, loaded from the environment (and .env via godotenv in main)
type Config struct {
	Env      string `envconfig:"APP_ENV" default:"production"`
	Port     int    `envconfig:"PORT" default:"5000"`
	Provider string `envconfig:"AI_PROVIDER" default:"openrouter"`

	Database      DatabaseConfig
	Mongo         MongoConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Transcription TranscriptionConfig
	Payment       PaymentConfig
	Interview     InterviewConfig
	Sweeper       SweeperConfig
	CORS          CORSConfig
}

type DatabaseConfig struct {
	Driver string `envconfig:"DATABASE_DRIVER" default:"postgres"`
	URL    string `envconfig:"DATABASE_URL" default:"host=localhost user=postgres password=postgres dbname=interview_ai port=5432 sslmode=disable"`
}

type MongoConfig struct {
	URI      string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017/interview-ai"`
	Database string `envconfig:"MONGODB_DATABASE" default:"interview-ai"`
}

// Redis is optional; an empty address disables the interview creation lock.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET"`
	Expire Expiry `envconfig:"JWT_EXPIRE" default:"7d"`
}

type TranscriptionConfig struct {
	APIKey       string        `envconfig:"ASSEMBLYAI_API_KEY"`
	BaseURL      string        `envconfig:"ASSEMBLYAI_BASE_URL" default:"https://api.assemblyai.com/v2"`
	PollInterval time.Duration `envconfig:"TRANSCRIPTION_POLL_INTERVAL" default:"5s"`
	MaxPolls     int           `envconfig:"TRANSCRIPTION_MAX_POLLS" default:"120"`
	Timeout      time.Duration `envconfig:"TRANSCRIPTION_TIMEOUT" default:"10m"`
}

// MaxWait is the longest a transcription wait can run: the poll budget,
// cut short by Timeout when one is set.
func (t TranscriptionConfig) MaxWait() time.Duration {
	budget := time.Duration(t.MaxPolls) * t.PollInterval
	if t.Timeout > 0 && t.Timeout < budget {
		return t.Timeout
	}
	return budget
}

type PaymentConfig struct {
	KeyID     string `envconfig:"RAZORPAY_KEY_ID"`
	KeySecret string `envconfig:"RAZORPAY_KEY_SECRET"`
}

type InterviewConfig struct {
	FreeLimit int           `envconfig:"FREE_INTERVIEW_LIMIT" default:"2"`
	LockTTL   time.Duration `envconfig:"INTERVIEW_LOCK_TTL" default:"10s"`
}

type SweeperConfig struct {
	Enabled    bool          `envconfig:"SWEEP_ENABLED" default:"true"`
	Schedule   string        `envconfig:"SWEEP_SCHEDULE" default:"*/15 * * * *"`
	StaleAfter time.Duration `envconfig:"SWEEP_STALE_AFTER" default:"1h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// Expiry accepts Go durations plus a day suffix ("7d").
type Expiry time.Duration

func (e *Expiry) Decode(value string) error {
	value = strings.TrimSpace(value)
	if strings.HasSuffix(value, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(value, "d"))
		if err != nil {
			return fmt.Errorf("invalid day expiry %q: %w", value, err)
		}
		*e = Expiry(time.Duration(days) * 24 * time.Hour)
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid expiry %q: %w", value, err)
	}
	*e = Expiry(d)
	return nil
}

func (e Expiry) Duration() time.Duration {
	return time.Duration(e)
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Provider != "openrouter" && c.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + c.Provider + ". Currently supported: openrouter, gemini")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWT.Expire.Duration() <= 0 {
		return errors.New("JWT_EXPIRE must be positive")
	}
	if c.Transcription.PollInterval <= 0 {
		return errors.New("TRANSCRIPTION_POLL_INTERVAL must be positive")
	}
	if c.Transcription.MaxPolls < 1 {
		return errors.New("TRANSCRIPTION_MAX_POLLS must be at least 1")
	}
	if c.Transcription.Timeout < 0 {
		return errors.New("TRANSCRIPTION_TIMEOUT must not be negative")
	}
	if c.Interview.FreeLimit < 0 {
		return errors.New("FREE_INTERVIEW_LIMIT must be non-negative")
	}
	// provider credentials are validated by the provider packages
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) CORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.AllowedOrigins))
	for _, origin := range c.CORS.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
