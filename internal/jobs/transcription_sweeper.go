package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"interviewai/internal/metrics"
)

const staleReason = "stale: no terminal status recorded"

type StaleFailer interface {
	FailStale(ctx context.Context, cutoff time.Time, reason string) (int64, error)
}

// SweeperConfig contains configuration for the transcription sweeper
type SweeperConfig struct {
	Schedule   string        // cron schedule, e.g. "*/15 * * * *"
	StaleAfter time.Duration // processing jobs older than this are failed
	Enabled    bool
}

// TranscriptionSweeper fails transcription jobs left in processing by a
// request that died before recording a terminal status.
type TranscriptionSweeper struct {
	jobs   StaleFailer
	config SweeperConfig
	cron   *cron.Cron
	logger *zap.Logger
	now    func() time.Time
}

func NewTranscriptionSweeper(jobs StaleFailer, config SweeperConfig, logger *zap.Logger) *TranscriptionSweeper {
	return &TranscriptionSweeper{
		jobs:   jobs,
		config: config,
		cron:   cron.New(),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Start begins the scheduled sweep
func (s *TranscriptionSweeper) Start() error {
	if !s.config.Enabled {
		s.logger.Info("Transcription sweeper is disabled, skipping scheduler")
		return nil
	}

	_, err := s.cron.AddFunc(s.config.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.RunSweep(ctx); err != nil {
			s.logger.Error("Transcription sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule transcription sweep: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Transcription sweeper started", zap.String("schedule", s.config.Schedule))
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *TranscriptionSweeper) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// RunSweep performs a single sweep
func (s *TranscriptionSweeper) RunSweep(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.config.StaleAfter)
	n, err := s.jobs.FailStale(ctx, cutoff, staleReason)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep stale transcriptions: %w", err)
	}
	if n > 0 {
		metrics.RecordStaleSwept(n)
		s.logger.Warn("Failed stale transcription jobs", zap.Int64("count", n), zap.Time("cutoff", cutoff))
	}
	return n, nil
}
