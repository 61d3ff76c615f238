package evaluation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"interviewai/internal/models"
	"interviewai/internal/utils"
)

type Mode string

const (
	// ModeStructured means the model honoured the JSON format.
	ModeStructured Mode = "structured"
	// ModeFallback means the reply was scored heuristically from an "N/10" pattern.
	ModeFallback Mode = "fallback_heuristic"
)

const (
	defaultFallbackScore = 5
	feedbackPrefixLen    = 200
	maxScore             = 10
)

// Result is an evaluation tagged with how it was obtained.
type Result struct {
	Mode   Mode
	Detail models.EvaluationDetail
	Raw    string
}

func (r *Result) Structured() bool {
	return r.Mode == ModeStructured
}

var (
	jsonObjectPattern    = regexp.MustCompile(`\{[\s\S]*\}`)
	scorePattern         = regexp.MustCompile(`(\d+)/10`)
	scoreValuePattern    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*10`)
	leadingNumberPattern = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)`)
)

// Parse turns a model reply into an evaluation. It never fails: replies
// without a decodable JSON object carrying a score or totalScore fall back
// to the heuristic.
func Parse(reply string) Result {
	if detail, ok := parseStructured(reply); ok {
		return Result{Mode: ModeStructured, Detail: detail, Raw: reply}
	}
	return Result{Mode: ModeFallback, Detail: Fallback(reply), Raw: reply}
}

// Fallback derives a well-formed evaluation from the first "N/10" in reply,
// or N=5 when there is none. N is clamped to 0..10.
func Fallback(reply string) models.EvaluationDetail {
	score := defaultFallbackScore
	if m := scorePattern.FindStringSubmatch(reply); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			score = n
		}
	}
	if score > maxScore {
		score = maxScore
	}

	clarity := 0
	if score >= 7 {
		clarity = 1
	}
	pass := models.PassStatusFail
	if score >= 6 {
		pass = models.PassStatusPass
	}

	return models.EvaluationDetail{
		Score:             fmt.Sprintf("%d/10", score),
		TotalScore:        float64(score),
		TechnicalAccuracy: math.Floor(float64(score) * 0.6),
		Depth:             math.Floor(float64(score) * 0.3),
		Clarity:           float64(clarity),
		Strengths:         []string{"Response provided"},
		Weaknesses:        []string{"Unable to parse detailed evaluation"},
		Suggestions:       []string{"Please provide more detailed answers"},
		OverallFeedback:   utils.Truncate(reply, feedbackPrefixLen),
		PassStatus:        pass,
	}
}

// wire shape of the model reply; numbers may arrive as strings and vice versa
type rawEvaluation struct {
	Score             *flexScore  `json:"score"`
	TotalScore        *flexNumber `json:"totalScore"`
	TechnicalAccuracy flexNumber  `json:"technicalAccuracy"`
	Depth             flexNumber  `json:"depth"`
	Clarity           flexNumber  `json:"clarity"`
	Strengths         flexStrings `json:"strengths"`
	Weaknesses        flexStrings `json:"weaknesses"`
	Suggestions       flexStrings `json:"suggestions"`
	OverallFeedback   string      `json:"overallFeedback"`
	PassStatus        string      `json:"passStatus"`
}

func parseStructured(reply string) (models.EvaluationDetail, bool) {
	match := jsonObjectPattern.FindString(utils.StripFences(reply))
	if match == "" {
		return models.EvaluationDetail{}, false
	}

	var raw rawEvaluation
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return models.EvaluationDetail{}, false
	}
	hasScore := raw.Score != nil && *raw.Score != ""
	if !hasScore && raw.TotalScore == nil {
		return models.EvaluationDetail{}, false
	}

	detail := models.EvaluationDetail{
		TechnicalAccuracy: float64(raw.TechnicalAccuracy),
		Depth:             float64(raw.Depth),
		Clarity:           float64(raw.Clarity),
		Strengths:         []string(raw.Strengths),
		Weaknesses:        []string(raw.Weaknesses),
		Suggestions:       []string(raw.Suggestions),
		OverallFeedback:   raw.OverallFeedback,
		PassStatus:        raw.PassStatus,
	}
	if hasScore {
		detail.Score = string(*raw.Score)
	}
	if raw.TotalScore != nil {
		detail.TotalScore = float64(*raw.TotalScore)
	}

	// fill whichever of score / totalScore the model left out
	if !hasScore {
		detail.Score = formatNumber(detail.TotalScore) + "/10"
	}
	if raw.TotalScore == nil {
		if m := scoreValuePattern.FindStringSubmatch(detail.Score); m != nil {
			detail.TotalScore, _ = strconv.ParseFloat(m[1], 64)
		}
	}
	return detail, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type flexNumber float64

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexNumber(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// null and other shapes decode as zero
		*f = 0
		return nil
	}
	if m := leadingNumberPattern.FindStringSubmatch(s); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		*f = flexNumber(v)
		return nil
	}
	*f = 0
	return nil
}

// flexScore accepts "8/10" or a bare number
type flexScore string

func (f *flexScore) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexScore(strings.TrimSpace(s))
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexScore(formatNumber(n) + "/10")
		return nil
	}
	*f = ""
	return nil
}

// flexStrings accepts a list or a single string
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s != "" {
		*f = []string{s}
		return nil
	}
	*f = []string{}
	return nil
}
