package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"interviewai/internal/interview"
	"interviewai/internal/middleware"
	"interviewai/internal/models"
	"interviewai/internal/utils"
)

type TranscribeHandler struct {
	service InterviewService
	logger  *zap.Logger
}

func NewTranscribeHandler(service InterviewService, logger *zap.Logger) *TranscribeHandler {
	return &TranscribeHandler{service: service, logger: logger}
}

// TranscribeHandler runs one answer through transcription and scoring.
// The request blocks until the transcript is ready or the poll budget runs out.
func (h *TranscribeHandler) TranscribeHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.TranscribeRequest](r)
	user := middleware.CurrentUser(r)

	submission, err := h.service.SubmitAnswer(r.Context(), interview.Answer{
		UserID:      user.ID,
		Audio:       req.AudioBytes(),
		Question:    req.Question,
		InterviewID: req.InterviewID,
		Context:     req.Context(),
	})
	if err != nil {
		writeWorkflowError(w, h.logger, err, "Error processing audio")
		return
	}

	result := submission.Evaluation
	h.logger.Info("Answer evaluated",
		zap.String("interview_id", submission.InterviewID),
		zap.String("mode", string(result.Mode)),
		zap.String("score", result.Detail.Score))

	utils.JSON(w, http.StatusOK, models.TranscribeResponse{
		Success: true,
		Data: &models.EvaluationResult{
			Success:          true,
			Score:            result.Detail.Score,
			Evaluation:       result.Detail,
			EvaluationMode:   string(result.Mode),
			TranscriptResult: submission.Transcript,
			Question:         req.Question,
			Experience:       req.Experience,
			DifficultyLevel:  req.DifficultyLevel,
			Subject:          req.Subject,
			Technology:       req.Technology,
		},
		InterviewID: submission.InterviewID,
	})
}
