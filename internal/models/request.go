package models

import (
	"encoding/base64"
	"net/mail"
	"strings"
)

// implements the Validator interface for every JSON body below

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Name == "" || r.Email == "" || r.Password == "" {
		return &ErrorResponse{Code: "missing_fields", Message: "Please provide name, email and password"}
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return &ErrorResponse{Code: "invalid_email", Message: "Please provide a valid email"}
	}
	if len(r.Password) < 6 {
		return &ErrorResponse{Code: "weak_password", Message: "Password must be at least 6 characters"}
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" || r.Password == "" {
		return &ErrorResponse{Code: "missing_credentials", Message: "Please provide an email and password"}
	}
	return nil
}

type UpdateDetailsRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r *UpdateDetailsRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Name == "" && r.Email == "" && r.Phone == "" {
		return &ErrorResponse{Code: "missing_fields", Message: "Nothing to update"}
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return &ErrorResponse{Code: "invalid_email", Message: "Please provide a valid email"}
		}
	}
	return nil
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r *UpdatePasswordRequest) Validate() error {
	if r.CurrentPassword == "" || r.NewPassword == "" {
		return &ErrorResponse{Code: "missing_fields", Message: "Please provide currentPassword and newPassword"}
	}
	if len(r.NewPassword) < 6 {
		return &ErrorResponse{Code: "weak_password", Message: "Password must be at least 6 characters"}
	}
	return nil
}

// TranscribeRequest is the body of POST /transcribe. Audio is base64.
type TranscribeRequest struct {
	Audio           string `json:"audio"`
	Question        string `json:"question"`
	InterviewID     string `json:"interviewId"`
	Experience      string `json:"experience"`
	DifficultyLevel string `json:"difficultyLevel"`
	Subject         string `json:"subject"`
	Technology      string `json:"technology"`

	audioBytes []byte
}

func (r *TranscribeRequest) Validate() error {
	if strings.TrimSpace(r.Audio) == "" {
		return &ErrorResponse{Code: "missing_audio", Message: "audio is required"}
	}
	if strings.TrimSpace(r.Question) == "" {
		return &ErrorResponse{Code: "missing_question", Message: "question is required"}
	}
	decoded, err := base64.StdEncoding.DecodeString(stripDataURI(r.Audio))
	if err != nil || len(decoded) == 0 {
		return &ErrorResponse{Code: "invalid_audio", Message: "audio must be base64 encoded"}
	}
	r.audioBytes = decoded

	r.InterviewID = strings.TrimSpace(r.InterviewID)
	if r.Experience == "" {
		r.Experience = DefaultExperience
	}
	if r.DifficultyLevel == "" {
		r.DifficultyLevel = DefaultDifficultyLevel
	}
	if r.Subject == "" {
		r.Subject = DefaultSubject
	}
	if r.Technology == "" {
		r.Technology = DefaultTechnology
	}
	return nil
}

// AudioBytes returns the decoded audio; only valid after Validate.
func (r *TranscribeRequest) AudioBytes() []byte {
	return r.audioBytes
}

func (r *TranscribeRequest) Context() GenerationContext {
	return GenerationContext{
		Experience:      r.Experience,
		DifficultyLevel: r.DifficultyLevel,
		Subject:         r.Subject,
		Technology:      r.Technology,
	}
}

func stripDataURI(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if idx := strings.Index(s, ","); idx >= 0 {
			return s[idx+1:]
		}
	}
	return s
}

type CreateInterviewRequest struct {
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
}

func (r *CreateInterviewRequest) Validate() error {
	r.CandidateName = strings.TrimSpace(r.CandidateName)
	r.CandidateEmail = strings.TrimSpace(r.CandidateEmail)
	return nil
}

type UpdateInterviewRequest struct {
	CandidateName  *string          `json:"candidateName"`
	CandidateEmail *string          `json:"candidateEmail"`
	Status         *InterviewStatus `json:"status"`
}

// Completion goes through /complete; only abandoning is allowed here.
func (r *UpdateInterviewRequest) Validate() error {
	if r.Status != nil && *r.Status != InterviewAbandoned && *r.Status != InterviewInProgress {
		return &ErrorResponse{Code: "invalid_status", Message: "status may only be set to in-progress or abandoned"}
	}
	return nil
}

// CandidateInfo drives LLM question generation.
type CandidateInfo struct {
	Experience        string `json:"experience"`
	Technology        string `json:"technology"`
	Position          string `json:"position"`
	InterviewType     string `json:"interviewType"`
	DifficultyLevel   string `json:"difficultyLevel"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
	FocusAreas        string `json:"focusAreas"`
	InterviewDuration int    `json:"interviewDuration"`
}

type GenerateQuestionsRequest struct {
	CandidateInfo *CandidateInfo `json:"candidateInfo"`
}

func (r *GenerateQuestionsRequest) Validate() error {
	info := r.CandidateInfo
	if info == nil || info.Experience == "" || info.Technology == "" || info.Position == "" ||
		info.InterviewType == "" || info.DifficultyLevel == "" {
		return &ErrorResponse{
			Code:    "missing_fields",
			Message: "Please provide experience, technology, position, interviewType, and difficultyLevel",
		}
	}
	if info.NumberOfQuestions <= 0 {
		info.NumberOfQuestions = 10
	}
	if info.NumberOfQuestions > 50 {
		return &ErrorResponse{Code: "too_many_questions", Message: "numberOfQuestions must be at most 50"}
	}
	if info.InterviewDuration <= 0 {
		info.InterviewDuration = 30
	}
	return nil
}

type QuestionRequest struct {
	Category   string `json:"category"`
	Question   string `json:"question"`
	Difficulty string `json:"difficulty"`
}

func (r *QuestionRequest) Validate() error {
	r.Category = strings.TrimSpace(r.Category)
	r.Question = strings.TrimSpace(r.Question)
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))
	if r.Category == "" || r.Question == "" {
		return &ErrorResponse{Code: "missing_fields", Message: "category and question are required"}
	}
	if r.Difficulty == "" {
		r.Difficulty = "medium"
	}
	if !ValidDifficulties[r.Difficulty] {
		return &ErrorResponse{Code: "invalid_difficulty", Message: "difficulty must be one of: " + strings.Join(ValidDifficultiesList(), ", ")}
	}
	return nil
}

type CreateOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

func (r *CreateOrderRequest) Validate() error {
	if r.Amount <= 0 {
		return &ErrorResponse{Code: "missing_amount", Message: "Amount is required"}
	}
	if r.Currency == "" {
		r.Currency = "INR"
	}
	return nil
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

func (r *VerifyPaymentRequest) Validate() error {
	if r.OrderID == "" || r.PaymentID == "" || r.Signature == "" {
		return &ErrorResponse{Code: "missing_fields", Message: "razorpay_order_id, razorpay_payment_id and razorpay_signature are required"}
	}
	return nil
}

type CaptureRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func (r *CaptureRequest) Validate() error {
	if r.Amount <= 0 {
		return &ErrorResponse{Code: "missing_amount", Message: "Amount is required"}
	}
	if r.Currency == "" {
		r.Currency = "INR"
	}
	return nil
}

type RefundRequest struct {
	Amount int64             `json:"amount"`
	Notes  map[string]string `json:"notes"`
}

func (r *RefundRequest) Validate() error {
	if r.Amount < 0 {
		return &ErrorResponse{Code: "invalid_amount", Message: "amount must not be negative"}
	}
	return nil
}
