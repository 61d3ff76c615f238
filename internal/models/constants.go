package models

type Role string

const (
	RoleFree    Role = "free"
	RolePremium Role = "premium"
	RoleAdmin   Role = "admin"
)

type InterviewStatus string

const (
	InterviewInProgress InterviewStatus = "in-progress"
	InterviewCompleted  InterviewStatus = "completed"
	InterviewAbandoned  InterviewStatus = "abandoned"
)

type TranscriptionStatus string

const (
	TranscriptionProcessing TranscriptionStatus = "processing"
	TranscriptionCompleted  TranscriptionStatus = "completed"
	TranscriptionFailed     TranscriptionStatus = "failed"
)

const (
	PassStatusPass = "pass"
	PassStatusFail = "fail"
)

// generation context defaults applied to /transcribe requests
const (
	DefaultExperience      = "intermediate"
	DefaultDifficultyLevel = "medium"
	DefaultSubject         = "programming"
	DefaultTechnology      = "general"
)

var ValidDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

func ValidDifficultiesList() []string {
	return []string{"easy", "medium", "hard"}
}
