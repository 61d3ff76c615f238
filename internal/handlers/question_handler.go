package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"interviewai/internal/middleware"
	"interviewai/internal/models"
	questionrepo "interviewai/internal/repositories/mongo"
	"interviewai/internal/utils"
)

type QuestionHandler struct {
	bank      QuestionBank
	generator QuestionGenerator
	logger    *zap.Logger
}

func NewQuestionHandler(bank QuestionBank, generator QuestionGenerator, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{bank: bank, generator: generator, logger: logger}
}

func (h *QuestionHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.GenerateQuestionsRequest](r)

	resp, err := h.generator.Generate(r.Context(), *req.CandidateInfo)
	if err != nil {
		h.logger.Error("Question generation failed", zap.Error(err))
		utils.JSONErrorDetails(w, http.StatusInternalServerError, "Error generating questions", err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *QuestionHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	questions, err := h.bank.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list questions", zap.Error(err))
		utils.JSONErrorDetails(w, http.StatusInternalServerError, "Error fetching questions", err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, nonNil(questions))
}

func (h *QuestionHandler) ListByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	questions, err := h.bank.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		h.logger.Error("Failed to list questions by category", zap.Error(err))
		utils.JSONErrorDetails(w, http.StatusInternalServerError, "Error fetching questions", err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, nonNil(questions))
}

func (h *QuestionHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	q, err := h.bank.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.questionError(w, err, "Error fetching question")
		return
	}
	utils.JSON(w, http.StatusOK, q)
}

func (h *QuestionHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.QuestionRequest](r)

	created, err := h.bank.Create(r.Context(), &models.Question{
		Category:   req.Category,
		Question:   req.Question,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		utils.JSONErrorDetails(w, http.StatusBadRequest, "Error creating question", err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, created)
}

func (h *QuestionHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.QuestionRequest](r)

	updated, err := h.bank.Update(r.Context(), chi.URLParam(r, "id"), bson.M{
		"category":   req.Category,
		"question":   req.Question,
		"difficulty": req.Difficulty,
	})
	if err != nil {
		h.questionError(w, err, "Error updating question")
		return
	}
	utils.JSON(w, http.StatusOK, updated)
}

func (h *QuestionHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.bank.SoftDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.questionError(w, err, "Error deleting question")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Question deleted successfully"})
}

func (h *QuestionHandler) questionError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, questionrepo.ErrQuestionNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Question not found")
		return
	}
	h.logger.Error(message, zap.Error(err))
	utils.JSONErrorDetails(w, http.StatusInternalServerError, message, err.Error())
}

func nonNil(questions []models.Question) []models.Question {
	if questions == nil {
		return []models.Question{}
	}
	return questions
}
