package interview

import "fmt"

type Kind string

const (
	KindNotFound             Kind = "not_found"
	KindForbidden            Kind = "forbidden"
	KindUploadFailed         Kind = "upload_failed"
	KindTranscriptionFailed  Kind = "transcription_failed"
	KindTranscriptionTimeout Kind = "transcription_timeout"
	KindEvaluationFailed     Kind = "evaluation_failed"
	KindBusy                 Kind = "busy"
	KindInternal             Kind = "internal"
)

// WorkflowError is the single error type returned by Service operations.
type WorkflowError struct {
	Kind    Kind
	Message string
	Details string
	Err     error
}

func (e *WorkflowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, err error) *WorkflowError {
	we := &WorkflowError{Kind: kind, Message: message, Err: err}
	if err != nil {
		we.Details = err.Error()
	}
	return we
}

var (
	errNotFound  = &WorkflowError{Kind: KindNotFound, Message: "Interview not found"}
	errForbidden = &WorkflowError{Kind: KindForbidden, Message: "Not authorized to access this interview"}
)

// LimitError is returned when a free account already owns Limit interviews.
type LimitError struct {
	Count int64
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("interview limit reached: %d of %d", e.Count, e.Limit)
}
