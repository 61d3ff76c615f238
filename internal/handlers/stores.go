package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"interviewai/internal/interview"
	"interviewai/internal/models"
)

// UserStore is implemented by repositories.UserRepository.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, userID string, updates *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

// QuestionBank is implemented by the mongo question repository.
type QuestionBank interface {
	List(ctx context.Context) ([]models.Question, error)
	ListByCategory(ctx context.Context, category string) ([]models.Question, error)
	GetByID(ctx context.Context, id string) (*models.Question, error)
	Create(ctx context.Context, q *models.Question) (*models.Question, error)
	Update(ctx context.Context, id string, patch bson.M) (*models.Question, error)
	SoftDelete(ctx context.Context, id string) error
}

type QuestionGenerator interface {
	Generate(ctx context.Context, info models.CandidateInfo) (*models.GenerateQuestionsResponse, error)
}

// InterviewService is the subset of *interview.Service the HTTP layer drives.
type InterviewService interface {
	Create(ctx context.Context, owner *models.User, req *models.CreateInterviewRequest) (*models.Interview, int, error)
	Quota(ctx context.Context, owner *models.User) (int64, int, int, error)
	List(ctx context.Context, userID string) ([]models.Interview, error)
	Get(ctx context.Context, userID, interviewID string) (*models.Interview, error)
	Update(ctx context.Context, userID, interviewID string, req *models.UpdateInterviewRequest) (*models.Interview, error)
	Delete(ctx context.Context, userID, interviewID string) error
	Complete(ctx context.Context, userID, interviewID string) (*models.CompletionReport, error)
	SubmitAnswer(ctx context.Context, in interview.Answer) (*interview.Submission, error)
}
