package repositories

import (
	"context"
	"errors"
	"time"

	"interviewai/internal/models"

	"gorm.io/gorm"
)

var ErrTranscriptionNotFound = errors.New("transcription job not found")

// TranscriptionRepository persists transcription jobs. Rows are never deleted.
type TranscriptionRepository struct {
	DB *gorm.DB
}

func (r *TranscriptionRepository) Create(ctx context.Context, job *models.TranscriptionJob) error {
	return r.DB.WithContext(ctx).Create(job).Error
}

func (r *TranscriptionRepository) GetByID(ctx context.Context, id string) (*models.TranscriptionJob, error) {
	var job models.TranscriptionJob
	err := r.DB.WithContext(ctx).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTranscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *TranscriptionRepository) AttachRemoteJob(ctx context.Context, id, audioURL, remoteID string) error {
	return r.update(ctx, id, map[string]interface{}{
		"audio_url": audioURL,
		"remote_id": remoteID,
		"status":    models.TranscriptionProcessing,
	})
}

func (r *TranscriptionRepository) MarkCompleted(ctx context.Context, id, text string) error {
	return r.update(ctx, id, map[string]interface{}{
		"text":   text,
		"status": models.TranscriptionCompleted,
	})
}

func (r *TranscriptionRepository) MarkFailed(ctx context.Context, id, reason string) error {
	return r.update(ctx, id, map[string]interface{}{
		"error_message": reason,
		"status":        models.TranscriptionFailed,
	})
}

// FailStale marks processing jobs last touched before cutoff as failed.
func (r *TranscriptionRepository) FailStale(ctx context.Context, cutoff time.Time, reason string) (int64, error) {
	result := r.DB.WithContext(ctx).Model(&models.TranscriptionJob{}).
		Where("status = ? AND updated_at < ?", models.TranscriptionProcessing, cutoff).
		Updates(map[string]interface{}{
			"status":        models.TranscriptionFailed,
			"error_message": reason,
		})
	return result.RowsAffected, result.Error
}

func (r *TranscriptionRepository) update(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.DB.WithContext(ctx).Model(&models.TranscriptionJob{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTranscriptionNotFound
	}
	return nil
}
