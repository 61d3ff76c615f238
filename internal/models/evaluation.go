package models

// EvaluationDetail is the scored breakdown of one answer.
// technicalAccuracy is out of 6, depth out of 3, clarity out of 1. Values are
// kept as the model reported them, fractions included.
type EvaluationDetail struct {
	Score             string   `json:"score"`
	TotalScore        float64  `json:"totalScore"`
	TechnicalAccuracy float64  `json:"technicalAccuracy"`
	Depth             float64  `json:"depth"`
	Clarity           float64  `json:"clarity"`
	Strengths         []string `json:"strengths"`
	Weaknesses        []string `json:"weaknesses"`
	Suggestions       []string `json:"suggestions"`
	OverallFeedback   string   `json:"overallFeedback"`
	PassStatus        string   `json:"passStatus"`
}

// GenerationContext describes the candidate profile a question was asked against.
type GenerationContext struct {
	Experience      string `json:"experience"`
	DifficultyLevel string `json:"difficultyLevel"`
	Subject         string `json:"subject"`
	Technology      string `json:"technology"`
}
