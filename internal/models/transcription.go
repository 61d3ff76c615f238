package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TranscriptionJob records one remote transcription. Rows are never deleted.
type TranscriptionJob struct {
	ID           string              `gorm:"type:varchar(36);primaryKey" json:"id"`
	InterviewID  string              `gorm:"type:varchar(36);index" json:"interviewId"`
	AudioURL     string              `json:"audioUrl,omitempty"`
	RemoteID     string              `gorm:"index" json:"transcriptId,omitempty"`
	Text         string              `gorm:"type:text" json:"text,omitempty"`
	Status       TranscriptionStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	ErrorMessage string              `gorm:"type:text" json:"error,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func (j *TranscriptionJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Status == "" {
		j.Status = TranscriptionProcessing
	}
	return nil
}
