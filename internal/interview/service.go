package interview

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"interviewai/internal/evaluation"
	"interviewai/internal/lock"
	"interviewai/internal/metrics"
	"interviewai/internal/models"
	"interviewai/internal/repositories"
	"interviewai/internal/transcription"
)

type InterviewStore interface {
	Create(ctx context.Context, interview *models.Interview) error
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Interview, error)
	CountByOwner(ctx context.Context, userID string) (int64, error)
	AppendQuestion(ctx context.Context, interviewID string, attempt *models.QuestionAttempt) error
	UpdateDetails(ctx context.Context, id string, updates map[string]interface{}) (*models.Interview, error)
	Complete(ctx context.Context, id string, totalScore int, completedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type TranscriptionStore interface {
	Create(ctx context.Context, job *models.TranscriptionJob) error
	AttachRemoteJob(ctx context.Context, id, audioURL, remoteID string) error
	MarkCompleted(ctx context.Context, id, text string) error
	MarkFailed(ctx context.Context, id, reason string) error
}

type Transcriber interface {
	Upload(ctx context.Context, audio io.Reader) (string, error)
	Submit(ctx context.Context, audioURL string) (string, error)
}

type TranscriptWaiter interface {
	Wait(ctx context.Context, id string) (*transcription.Transcript, error)
}

type AnswerEvaluator interface {
	Evaluate(ctx context.Context, question, answer string, gc models.GenerationContext) (*evaluation.Result, error)
}

type Options struct {
	FreeLimit int
	LockTTL   time.Duration
	// TempDir holds per-request audio files; empty means os.TempDir().
	TempDir string
}

// Service runs the answer pipeline and owns interview lifecycle rules.
type Service struct {
	interviews  InterviewStore
	jobs        TranscriptionStore
	transcriber Transcriber
	waiter      TranscriptWaiter
	evaluator   AnswerEvaluator
	locker      lock.Locker
	opts        Options
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(
	interviews InterviewStore,
	jobs TranscriptionStore,
	transcriber Transcriber,
	waiter TranscriptWaiter,
	evaluator AnswerEvaluator,
	locker lock.Locker,
	opts Options,
	logger *zap.Logger,
) *Service {
	if opts.LockTTL <= 0 {
		opts.LockTTL = 10 * time.Second
	}
	return &Service{
		interviews:  interviews,
		jobs:        jobs,
		transcriber: transcriber,
		waiter:      waiter,
		evaluator:   evaluator,
		locker:      locker,
		opts:        opts,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Answer is one audio submission for a question.
type Answer struct {
	UserID      string
	Audio       []byte
	Question    string
	InterviewID string
	Context     models.GenerationContext
}

type Submission struct {
	InterviewID string
	Transcript  string
	Evaluation  *evaluation.Result
}

// SubmitAnswer transcribes and scores one answer, then appends it to the
// caller's interview, creating one first when no id is given.
func (s *Service) SubmitAnswer(ctx context.Context, in Answer) (*Submission, error) {
	interviewID, err := s.resolveInterview(ctx, in.UserID, in.InterviewID)
	if err != nil {
		return nil, err
	}
	log := s.logger.With(zap.String("interview_id", interviewID), zap.String("user_id", in.UserID))

	audioPath, cleanup, err := s.writeTempAudio(in.Audio)
	if err != nil {
		return nil, newError(KindInternal, "Failed to stage audio", err)
	}
	defer cleanup()

	job := &models.TranscriptionJob{InterviewID: interviewID}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, newError(KindInternal, "Failed to record transcription job", err)
	}

	remoteID, err := s.upload(ctx, job.ID, audioPath)
	if err != nil {
		metrics.RecordTranscription(metrics.OutcomeUploadFailed)
		s.markFailed(job.ID, "upload failed: "+err.Error(), log)
		return nil, newError(KindUploadFailed, "Failed to upload audio", err)
	}
	log = log.With(zap.String("transcript_id", remoteID))

	transcript, err := s.waiter.Wait(ctx, remoteID)
	if err != nil {
		if errors.Is(err, transcription.ErrTimeout) {
			metrics.RecordTranscription(metrics.OutcomeTimeout)
			s.markFailed(job.ID, "timed out waiting for transcript", log)
			return nil, newError(KindTranscriptionTimeout, "Transcription timed out", err)
		}
		s.markFailed(job.ID, err.Error(), log)
		return nil, newError(KindTranscriptionFailed, "Transcription error", err)
	}

	if transcript.Status == transcription.StatusFailed {
		metrics.RecordTranscription(metrics.OutcomeFailed)
		s.markFailed(job.ID, transcript.Error, log)
		return nil, &WorkflowError{Kind: KindTranscriptionFailed, Message: "Transcription failed", Details: transcript.Error}
	}

	metrics.RecordTranscription(metrics.OutcomeCompleted)
	if err := s.jobs.MarkCompleted(ctx, job.ID, transcript.Text); err != nil {
		return nil, newError(KindInternal, "Failed to record transcript", err)
	}

	result, err := s.evaluator.Evaluate(ctx, in.Question, transcript.Text, in.Context)
	if err != nil {
		return nil, newError(KindEvaluationFailed, "Failed to evaluate answer", err)
	}
	metrics.RecordEvaluation(string(result.Mode))

	attempt := &models.QuestionAttempt{
		Question:        in.Question,
		Answer:          transcript.Text,
		Transcript:      transcript.Text,
		Score:           result.Detail.Score,
		Evaluation:      result.Detail,
		EvaluationMode:  string(result.Mode),
		Experience:      in.Context.Experience,
		DifficultyLevel: in.Context.DifficultyLevel,
		Subject:         in.Context.Subject,
		Technology:      in.Context.Technology,
		AnsweredAt:      s.now(),
	}
	if err := s.interviews.AppendQuestion(ctx, interviewID, attempt); err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return nil, errNotFound
		}
		return nil, newError(KindInternal, "Failed to save answer", err)
	}

	log.Info("Answer evaluated",
		zap.String("mode", string(result.Mode)),
		zap.String("score", result.Detail.Score))

	return &Submission{
		InterviewID: interviewID,
		Transcript:  transcript.Text,
		Evaluation:  result,
	}, nil
}

// resolveInterview checks ownership of an existing interview or creates a
// new one. Creation here is not free-tier gated.
func (s *Service) resolveInterview(ctx context.Context, userID, interviewID string) (string, error) {
	if interviewID != "" {
		if _, err := s.owned(ctx, userID, interviewID); err != nil {
			return "", err
		}
		return interviewID, nil
	}

	interview := &models.Interview{
		UserID: userID,
		Status: models.InterviewInProgress,
	}
	if err := s.interviews.Create(ctx, interview); err != nil {
		return "", newError(KindInternal, "Failed to create interview", err)
	}
	metrics.RecordInterviewCreated()
	return interview.ID, nil
}

func (s *Service) upload(ctx context.Context, jobID, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	audioURL, err := s.transcriber.Upload(ctx, f)
	if err != nil {
		return "", err
	}
	remoteID, err := s.transcriber.Submit(ctx, audioURL)
	if err != nil {
		return "", err
	}
	if err := s.jobs.AttachRemoteJob(ctx, jobID, audioURL, remoteID); err != nil {
		return "", err
	}
	return remoteID, nil
}

// writeTempAudio stages audio in a uniquely named file. cleanup is always non-nil.
func (s *Service) writeTempAudio(audio []byte) (string, func(), error) {
	f, err := os.CreateTemp(s.opts.TempDir, "answer-*.wav")
	if err != nil {
		return "", func() {}, err
	}
	path := f.Name()
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove temp audio", zap.String("path", path), zap.Error(err))
		}
	}

	if _, err := f.Write(audio); err != nil {
		f.Close()
		cleanup()
		return "", func() {}, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", func() {}, err
	}
	return path, cleanup, nil
}

// terminal status is recorded even when the request context is gone
func (s *Service) markFailed(jobID, reason string, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.jobs.MarkFailed(ctx, jobID, reason); err != nil {
		log.Error("Failed to mark transcription job failed", zap.String("job_id", jobID), zap.Error(err))
	}
}

func (s *Service) owned(ctx context.Context, userID, interviewID string) (*models.Interview, error) {
	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return nil, errNotFound
		}
		return nil, newError(KindInternal, "Failed to load interview", err)
	}
	if interview.UserID != userID {
		return nil, errForbidden
	}
	return interview, nil
}
