package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"interviewai/internal/interview"
	"interviewai/internal/utils"
)

var workflowStatus = map[interview.Kind]int{
	interview.KindNotFound:             http.StatusNotFound,
	interview.KindForbidden:            http.StatusForbidden,
	interview.KindTranscriptionTimeout: http.StatusGatewayTimeout,
	interview.KindBusy:                 http.StatusConflict,
}

// writeWorkflowError maps service errors onto HTTP statuses. fallback is
// the message used for errors that did not come from the service.
func writeWorkflowError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	var limitErr *interview.LimitError
	if errors.As(err, &limitErr) {
		utils.JSON(w, http.StatusForbidden, map[string]interface{}{
			"error":        "Interview limit reached",
			"details":      limitDetails(limitErr.Limit),
			"currentCount": limitErr.Count,
			"limit":        limitErr.Limit,
		})
		return
	}

	var we *interview.WorkflowError
	if !errors.As(err, &we) {
		logger.Error(fallback, zap.Error(err))
		utils.JSONErrorDetails(w, http.StatusInternalServerError, fallback, err.Error())
		return
	}

	status, ok := workflowStatus[we.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		logger.Error(we.Message, zap.String("kind", string(we.Kind)), zap.Error(err))
	}
	if we.Details != "" {
		utils.JSONErrorDetails(w, status, we.Message, we.Details)
		return
	}
	utils.JSONError(w, status, we.Message)
}
