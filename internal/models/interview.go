package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interview owns an ordered, append-only list of question attempts.
type Interview struct {
	ID             string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID         string            `gorm:"type:varchar(36);index;not null" json:"userId"`
	CandidateName  string            `json:"candidateName,omitempty"`
	CandidateEmail string            `json:"candidateEmail,omitempty"`
	Questions      []QuestionAttempt `gorm:"foreignKey:InterviewID;constraint:OnDelete:CASCADE" json:"questions"`
	TotalScore     int               `gorm:"not null;default:0" json:"totalScore"`
	Status         InterviewStatus   `gorm:"type:varchar(16);not null;index" json:"status"`
	StartedAt      time.Time         `gorm:"not null" json:"startedAt"`
	CompletedAt    *time.Time        `json:"completedAt,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = InterviewInProgress
	}
	if i.StartedAt.IsZero() {
		i.StartedAt = time.Now().UTC()
	}
	return nil
}

// QuestionAttempt is one answered question. Rows are inserted once and never updated.
type QuestionAttempt struct {
	ID              uint             `gorm:"primaryKey" json:"-"`
	InterviewID     string           `gorm:"type:varchar(36);index;uniqueIndex:idx_attempt_position,priority:1;not null" json:"-"`
	Position        int              `gorm:"not null;uniqueIndex:idx_attempt_position,priority:2" json:"position"`
	Question        string           `gorm:"type:text;not null" json:"question"`
	Answer          string           `gorm:"type:text" json:"answer"`
	Transcript      string           `gorm:"type:text" json:"transcript"`
	Score           string           `json:"score"`
	Evaluation      EvaluationDetail `gorm:"serializer:json;type:text" json:"evaluation"`
	EvaluationMode  string           `gorm:"type:varchar(24)" json:"evaluationMode"`
	Experience      string           `json:"experience"`
	DifficultyLevel string           `json:"difficultyLevel"`
	Subject         string           `json:"subject"`
	Technology      string           `json:"technology"`
	AnsweredAt      time.Time        `gorm:"not null" json:"answeredAt"`
}
