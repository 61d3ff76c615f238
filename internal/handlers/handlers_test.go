package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"interviewai/internal/interview"
	"interviewai/internal/middleware"
	"interviewai/internal/models"
)

type mockInterviewService struct {
	createFn   func(owner *models.User, req *models.CreateInterviewRequest) (*models.Interview, int, error)
	quotaFn    func(owner *models.User) (int64, int, int, error)
	listFn     func(userID string) ([]models.Interview, error)
	getFn      func(userID, id string) (*models.Interview, error)
	updateFn   func(userID, id string, req *models.UpdateInterviewRequest) (*models.Interview, error)
	deleteFn   func(userID, id string) error
	completeFn func(userID, id string) (*models.CompletionReport, error)
	submitFn   func(in interview.Answer) (*interview.Submission, error)
}

func (m *mockInterviewService) Create(ctx context.Context, owner *models.User, req *models.CreateInterviewRequest) (*models.Interview, int, error) {
	return m.createFn(owner, req)
}

func (m *mockInterviewService) Quota(ctx context.Context, owner *models.User) (int64, int, int, error) {
	if m.quotaFn == nil {
		return 0, 2, 2, nil
	}
	return m.quotaFn(owner)
}

func (m *mockInterviewService) List(ctx context.Context, userID string) ([]models.Interview, error) {
	return m.listFn(userID)
}

func (m *mockInterviewService) Get(ctx context.Context, userID, id string) (*models.Interview, error) {
	return m.getFn(userID, id)
}

func (m *mockInterviewService) Update(ctx context.Context, userID, id string, req *models.UpdateInterviewRequest) (*models.Interview, error) {
	return m.updateFn(userID, id, req)
}

func (m *mockInterviewService) Delete(ctx context.Context, userID, id string) error {
	return m.deleteFn(userID, id)
}

func (m *mockInterviewService) Complete(ctx context.Context, userID, id string) (*models.CompletionReport, error) {
	return m.completeFn(userID, id)
}

func (m *mockInterviewService) SubmitAnswer(ctx context.Context, in interview.Answer) (*interview.Submission, error) {
	return m.submitFn(in)
}

type mockQuestionBank struct {
	listFn       func() ([]models.Question, error)
	byCategoryFn func(category string) ([]models.Question, error)
	getFn        func(id string) (*models.Question, error)
	createFn     func(q *models.Question) (*models.Question, error)
	updateFn     func(id string, patch bson.M) (*models.Question, error)
	deleteFn     func(id string) error
}

func (m *mockQuestionBank) List(ctx context.Context) ([]models.Question, error) {
	return m.listFn()
}

func (m *mockQuestionBank) ListByCategory(ctx context.Context, category string) ([]models.Question, error) {
	return m.byCategoryFn(category)
}

func (m *mockQuestionBank) GetByID(ctx context.Context, id string) (*models.Question, error) {
	return m.getFn(id)
}

func (m *mockQuestionBank) Create(ctx context.Context, q *models.Question) (*models.Question, error) {
	return m.createFn(q)
}

func (m *mockQuestionBank) Update(ctx context.Context, id string, patch bson.M) (*models.Question, error) {
	return m.updateFn(id, patch)
}

func (m *mockQuestionBank) SoftDelete(ctx context.Context, id string) error {
	return m.deleteFn(id)
}

type mockGenerator struct {
	generateFn func(info models.CandidateInfo) (*models.GenerateQuestionsResponse, error)
}

func (m *mockGenerator) Generate(ctx context.Context, info models.CandidateInfo) (*models.GenerateQuestionsResponse, error) {
	return m.generateFn(info)
}

var (
	freeUser    = &models.User{ID: "user-1", Name: "Free", Email: "free@example.com", Role: models.RoleFree, IsActive: true}
	premiumUser = &models.User{ID: "user-2", Name: "Premium", Email: "premium@example.com", Role: models.RolePremium, IsActive: true}
)

// serve routes a single request through a chi router so URL params resolve.
func serve(t *testing.T, method, pattern, target string, handler http.Handler, user *models.User, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	router.Method(method, pattern, handler)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if user != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validated[T middleware.Validator](fn http.HandlerFunc) http.Handler {
	return middleware.ValidateRequest[T]()(fn)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}
