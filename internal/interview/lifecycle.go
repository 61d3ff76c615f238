package interview

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"interviewai/internal/lock"
	"interviewai/internal/metrics"
	"interviewai/internal/models"
	"interviewai/internal/repositories"
)

// Unlimited is reported as the remaining count for non-free accounts.
const Unlimited = -1

// Create opens a new interview for owner. Free accounts are capped at
// FreeLimit; the count and insert run under a per-user lock.
func (s *Service) Create(ctx context.Context, owner *models.User, req *models.CreateInterviewRequest) (*models.Interview, int, error) {
	release, err := s.locker.Acquire(ctx, "interview-create:"+owner.ID, s.opts.LockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrLockHeld) {
			return nil, 0, newError(KindBusy, "Another interview is being created, please retry", err)
		}
		return nil, 0, newError(KindInternal, "Failed to acquire interview lock", err)
	}
	defer release()

	count, err := s.interviews.CountByOwner(ctx, owner.ID)
	if err != nil {
		return nil, 0, newError(KindInternal, "Failed to count interviews", err)
	}
	if owner.IsFree() && count >= int64(s.opts.FreeLimit) {
		metrics.RecordFreeTierRejection()
		return nil, 0, &LimitError{Count: count, Limit: s.opts.FreeLimit}
	}

	interview := &models.Interview{
		UserID:         owner.ID,
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		Status:         models.InterviewInProgress,
		StartedAt:      s.now(),
	}
	if err := s.interviews.Create(ctx, interview); err != nil {
		return nil, 0, newError(KindInternal, "Failed to create interview", err)
	}
	metrics.RecordInterviewCreated()
	s.logger.Info("Interview created", zap.String("interview_id", interview.ID), zap.String("user_id", owner.ID))

	remaining := Unlimited
	if owner.IsFree() {
		remaining = s.opts.FreeLimit - int(count) - 1
	}
	return interview, remaining, nil
}

// Quota reports how many interviews owner has and may still create.
func (s *Service) Quota(ctx context.Context, owner *models.User) (count int64, limit int, remaining int, err error) {
	count, err = s.interviews.CountByOwner(ctx, owner.ID)
	if err != nil {
		return 0, 0, 0, newError(KindInternal, "Failed to count interviews", err)
	}
	if !owner.IsFree() {
		return count, Unlimited, Unlimited, nil
	}
	remaining = s.opts.FreeLimit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return count, s.opts.FreeLimit, remaining, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]models.Interview, error) {
	interviews, err := s.interviews.ListByOwner(ctx, userID)
	if err != nil {
		return nil, newError(KindInternal, "Failed to list interviews", err)
	}
	return interviews, nil
}

func (s *Service) Get(ctx context.Context, userID, interviewID string) (*models.Interview, error) {
	return s.owned(ctx, userID, interviewID)
}

func (s *Service) Update(ctx context.Context, userID, interviewID string, req *models.UpdateInterviewRequest) (*models.Interview, error) {
	if _, err := s.owned(ctx, userID, interviewID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CandidateName != nil {
		updates["candidate_name"] = *req.CandidateName
	}
	if req.CandidateEmail != nil {
		updates["candidate_email"] = *req.CandidateEmail
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	interview, err := s.interviews.UpdateDetails(ctx, interviewID, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return nil, errNotFound
		}
		return nil, newError(KindInternal, "Failed to update interview", err)
	}
	return interview, nil
}

func (s *Service) Delete(ctx context.Context, userID, interviewID string) error {
	if _, err := s.owned(ctx, userID, interviewID); err != nil {
		return err
	}
	if err := s.interviews.Delete(ctx, interviewID); err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return errNotFound
		}
		return newError(KindInternal, "Failed to delete interview", err)
	}
	return nil
}

// Complete scores the interview and marks it completed. Calling it again on
// a completed interview recomputes the report and moves CompletedAt.
func (s *Service) Complete(ctx context.Context, userID, interviewID string) (*models.CompletionReport, error) {
	interview, err := s.owned(ctx, userID, interviewID)
	if err != nil {
		return nil, err
	}

	completedAt := s.now()
	report := BuildReport(interview, completedAt)

	if err := s.interviews.Complete(ctx, interviewID, report.Summary.AverageScore, completedAt); err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return nil, errNotFound
		}
		return nil, newError(KindInternal, "Failed to complete interview", err)
	}

	s.logger.Info("Interview completed",
		zap.String("interview_id", interviewID),
		zap.Int("average_score", report.Summary.AverageScore),
		zap.String("overall_status", report.Summary.OverallStatus))
	return report, nil
}
