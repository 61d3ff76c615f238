package interview

import (
	"fmt"
	"math"
	"time"

	"interviewai/internal/models"
)

// BuildReport aggregates an interview's attempts as of completedAt.
// Averages truncate; percentages round. Only an exact "pass" verdict counts
// as passed.
func BuildReport(interview *models.Interview, completedAt time.Time) *models.CompletionReport {
	var totalScore, totalAccuracy, totalDepth, totalClarity float64
	var passed int

	results := make([]models.ReportQuestion, 0, len(interview.Questions))
	for i, q := range interview.Questions {
		eval := q.Evaluation
		totalScore += eval.TotalScore
		totalAccuracy += eval.TechnicalAccuracy
		totalDepth += eval.Depth
		totalClarity += eval.Clarity
		if eval.PassStatus == models.PassStatusPass {
			passed++
		}

		score := q.Score
		if score == "" {
			score = eval.Score
		}
		results = append(results, models.ReportQuestion{
			QuestionNumber: i + 1,
			Question:       q.Question,
			Answer:         q.Answer,
			Score:          score,
			Evaluation:     eval,
			Technology:     q.Technology,
			Difficulty:     q.DifficultyLevel,
		})
	}

	count := len(interview.Questions)
	divisor := count
	if divisor == 0 {
		divisor = 1
	}
	avgScore := truncatedAverage(totalScore, divisor)
	avgAccuracy := truncatedAverage(totalAccuracy, divisor)
	avgDepth := truncatedAverage(totalDepth, divisor)
	avgClarity := truncatedAverage(totalClarity, divisor)

	overall := models.PassStatusFail
	if passed >= (divisor+1)/2 {
		overall = models.PassStatusPass
	}

	return &models.CompletionReport{
		InterviewID:    interview.ID,
		CandidateName:  interview.CandidateName,
		CandidateEmail: interview.CandidateEmail,
		Status:         models.InterviewCompleted,
		StartedAt:      interview.StartedAt,
		CompletedAt:    completedAt,
		Duration:       fmt.Sprintf("%d minutes", int(math.Round(completedAt.Sub(interview.StartedAt).Minutes()))),
		Summary: models.ReportSummary{
			TotalQuestions:    count,
			QuestionsAnswered: count,
			Passed:            passed,
			Failed:            count - passed,
			AverageScore:      avgScore,
			TotalScore:        fmt.Sprintf("%d/10", avgScore),
			OverallStatus:     overall,
		},
		Performance: models.ReportPerformance{
			TechnicalAccuracy:  fmt.Sprintf("%d/6", avgAccuracy),
			Depth:              fmt.Sprintf("%d/3", avgDepth),
			Clarity:            fmt.Sprintf("%d/1", avgClarity),
			AccuracyPercentage: percent(avgAccuracy, 6),
			DepthPercentage:    percent(avgDepth, 3),
			ClarityPercentage:  percent(avgClarity, 1),
		},
		DetailedResults: results,
		Recommendations: Recommendations(avgScore, avgAccuracy, avgDepth, avgClarity),
	}
}

func truncatedAverage(sum float64, n int) int {
	return int(math.Trunc(sum / float64(n)))
}

func percent(value, max int) string {
	return fmt.Sprintf("%d%%", int(math.Round(float64(value)/float64(max)*100)))
}

func Recommendations(score, accuracy, depth, clarity int) []string {
	var recs []string
	if accuracy < 4 {
		recs = append(recs, "Focus on improving technical accuracy by reviewing fundamental concepts")
	}
	if depth < 2 {
		recs = append(recs, "Work on providing more detailed explanations with examples")
	}
	if clarity < 1 {
		recs = append(recs, "Practice structuring your answers more clearly")
	}
	switch {
	case score >= 8:
		recs = append(recs, "Excellent performance! Keep up the good work")
	case score >= 6:
		recs = append(recs, "Good performance with room for improvement")
	default:
		recs = append(recs, "Consider additional study and practice before the next interview")
	}
	return recs
}
