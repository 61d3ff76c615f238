package repositories

import (
	"context"
	"errors"
	"time"

	"interviewai/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInterviewNotFound = errors.New("interview not found")

type InterviewRepository struct {
	DB *gorm.DB
}

func orderedAttempts(db *gorm.DB) *gorm.DB {
	return db.Order("position asc, id asc")
}

func (r *InterviewRepository) Create(ctx context.Context, interview *models.Interview) error {
	return r.DB.WithContext(ctx).Create(interview).Error
}

func (r *InterviewRepository) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	var interview models.Interview
	err := r.DB.WithContext(ctx).Preload("Questions", orderedAttempts).First(&interview, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInterviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// ListByOwner returns the owner's interviews, newest first.
func (r *InterviewRepository) ListByOwner(ctx context.Context, userID string) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.DB.WithContext(ctx).
		Preload("Questions", orderedAttempts).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&interviews).Error
	if err != nil {
		return nil, err
	}
	return interviews, nil
}

func (r *InterviewRepository) CountByOwner(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Interview{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// AppendQuestion inserts one attempt after the existing ones. Earlier rows are untouched.
// The parent row is locked for the count and insert, so concurrent appends to one
// interview take distinct positions; idx_attempt_position rejects any that slip through.
func (r *InterviewRepository) AppendQuestion(ctx context.Context, interviewID string, attempt *models.QuestionAttempt) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent models.Interview
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").Take(&parent, "id = ?", interviewID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInterviewNotFound
		}
		if err != nil {
			return err
		}

		var position int64
		if err := tx.Model(&models.QuestionAttempt{}).Where("interview_id = ?", interviewID).Count(&position).Error; err != nil {
			return err
		}

		attempt.ID = 0
		attempt.InterviewID = interviewID
		attempt.Position = int(position)
		if attempt.AnsweredAt.IsZero() {
			attempt.AnsweredAt = time.Now().UTC()
		}
		return tx.Create(attempt).Error
	})
}

// UpdateDetails changes candidate fields and status.
func (r *InterviewRepository) UpdateDetails(ctx context.Context, id string, updates map[string]interface{}) (*models.Interview, error) {
	if len(updates) > 0 {
		result := r.DB.WithContext(ctx).Model(&models.Interview{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrInterviewNotFound
		}
	}
	return r.GetByID(ctx, id)
}

// Complete stores the aggregate score and stamps completion. Calling it again re-stamps.
func (r *InterviewRepository) Complete(ctx context.Context, id string, totalScore int, completedAt time.Time) error {
	result := r.DB.WithContext(ctx).Model(&models.Interview{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       models.InterviewCompleted,
		"total_score":  totalScore,
		"completed_at": completedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInterviewNotFound
	}
	return nil
}

func (r *InterviewRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("interview_id = ?", id).Delete(&models.QuestionAttempt{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Interview{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInterviewNotFound
		}
		return nil
	})
}
