package models

import "time"

// uniform validation error responses
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"error"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// single field validation error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// UserView is the public projection of a user with interview quota figures.
type UserView struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Email               string      `json:"email"`
	Phone               string      `json:"phone,omitempty"`
	Role                Role        `json:"role"`
	InterviewCount      int64       `json:"interviewCount"`
	InterviewLimit      interface{} `json:"interviewLimit"`
	RemainingInterviews interface{} `json:"remainingInterviews"`
}

// EvaluationResult is returned by POST /transcribe under "data".
type EvaluationResult struct {
	Success          bool             `json:"success"`
	Score            string           `json:"score"`
	Evaluation       EvaluationDetail `json:"evaluation"`
	EvaluationMode   string           `json:"evaluationMode"`
	TranscriptResult string           `json:"transcriptResult"`
	Question         string           `json:"question"`
	Experience       string           `json:"experience"`
	DifficultyLevel  string           `json:"difficultyLevel"`
	Subject          string           `json:"subject"`
	Technology       string           `json:"technology"`
}

type TranscribeResponse struct {
	Success     bool              `json:"success"`
	Data        *EvaluationResult `json:"data"`
	InterviewID string            `json:"interviewId"`
}

// CompletionReport is the aggregate produced when an interview is completed.
type CompletionReport struct {
	InterviewID     string            `json:"interviewId"`
	CandidateName   string            `json:"candidateName,omitempty"`
	CandidateEmail  string            `json:"candidateEmail,omitempty"`
	Status          InterviewStatus   `json:"status"`
	StartedAt       time.Time         `json:"startedAt"`
	CompletedAt     time.Time         `json:"completedAt"`
	Duration        string            `json:"duration"`
	Summary         ReportSummary     `json:"summary"`
	Performance     ReportPerformance `json:"performance"`
	DetailedResults []ReportQuestion  `json:"detailedResults"`
	Recommendations []string          `json:"recommendations"`
}

type ReportSummary struct {
	TotalQuestions    int    `json:"totalQuestions"`
	QuestionsAnswered int    `json:"questionsAnswered"`
	Passed            int    `json:"passed"`
	Failed            int    `json:"failed"`
	AverageScore      int    `json:"averageScore"`
	TotalScore        string `json:"totalScore"`
	OverallStatus     string `json:"overallStatus"`
}

type ReportPerformance struct {
	TechnicalAccuracy  string `json:"technicalAccuracy"`
	Depth              string `json:"depth"`
	Clarity            string `json:"clarity"`
	AccuracyPercentage string `json:"accuracyPercentage"`
	DepthPercentage    string `json:"depthPercentage"`
	ClarityPercentage  string `json:"clarityPercentage"`
}

type ReportQuestion struct {
	QuestionNumber int              `json:"questionNumber"`
	Question       string           `json:"question"`
	Answer         string           `json:"answer"`
	Score          string           `json:"score"`
	Evaluation     EvaluationDetail `json:"evaluation"`
	Technology     string           `json:"technology"`
	Difficulty     string           `json:"difficulty"`
}

type GenerateQuestionsResponse struct {
	Success   bool                `json:"success"`
	Questions []GeneratedQuestion `json:"questions"`
	Metadata  QuestionsMetadata   `json:"metadata"`
}

type QuestionsMetadata struct {
	Experience        string `json:"experience"`
	Technology        string `json:"technology"`
	Position          string `json:"position"`
	InterviewType     string `json:"interviewType"`
	DifficultyLevel   string `json:"difficultyLevel"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
	FocusAreas        string `json:"focusAreas"`
	InterviewDuration int    `json:"interviewDuration"`
	// Fallback is true when the model reply could not be parsed and
	// placeholder questions were returned instead.
	Fallback bool `json:"fallback"`
}
