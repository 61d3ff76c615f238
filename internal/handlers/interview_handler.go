package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"interviewai/internal/middleware"
	"interviewai/internal/models"
	"interviewai/internal/utils"
)

type InterviewHandler struct {
	service InterviewService
	logger  *zap.Logger
}

func NewInterviewHandler(service InterviewService, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{service: service, logger: logger}
}

func (h *InterviewHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateInterviewRequest](r)
	user := middleware.CurrentUser(r)

	created, remaining, err := h.service.Create(r.Context(), user, req)
	if err != nil {
		writeWorkflowError(w, h.logger, err, "Error creating interview")
		return
	}

	message := "Interview created successfully"
	if user.IsFree() {
		message = fmt.Sprintf("You have %d interviews remaining", remaining)
	}
	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"success":   true,
		"interview": created,
		"message":   message,
	})
}

func (h *InterviewHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	interviews, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		writeWorkflowError(w, h.logger, err, "Error fetching interviews")
		return
	}
	_, limit, remaining, err := h.service.Quota(r.Context(), user)
	if err != nil {
		writeWorkflowError(w, h.logger, err, "Error fetching interviews")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"count":      len(interviews),
		"interviews": interviews,
		"userRole":   user.Role,
		"limit":      quotaValue(limit),
		"remaining":  quotaValue(remaining),
	})
}

func (h *InterviewHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	found, err := h.service.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeWorkflowError(w, h.logger, err, "Error fetching interview")
		return
	}
	utils.JSON(w, http.StatusOK, found)
}

func (h *InterviewHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpdateInterviewRequest](r)
	user := middleware.CurrentUser(r)

	updated, err := h.service.Update(r.Context(), user.ID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeWorkflowError(w, h.logger, err, "Error updating interview")
		return
	}
	utils.JSON(w, http.StatusOK, updated)
}

func (h *InterviewHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	if err := h.service.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeWorkflowError(w, h.logger, err, "Error deleting interview")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Interview deleted successfully"})
}

func (h *InterviewHandler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	report, err := h.service.Complete(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeWorkflowError(w, h.logger, err, "Error completing interview")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Interview completed successfully",
		"report":  report,
	})
}
