package usecase

import (
	"strings"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

// DefaultDimension is the bucket for yes/no questions without a dimension code.
const DefaultDimension = "D1"

// DimensionScore holds the per-dimension motivation score.
type DimensionScore struct {
	NumericScore int
	MaxScore     int
}

// MotivationScore is the global motivation score. Nil fields mean the score
// is not applicable (no yes/no questions), which is distinct from zero achieved.
type MotivationScore struct {
	NumericScore *int
	MaxScore     *int
}

// isYes reports whether a free-text answer counts as an affirmative.
// The forms accepted are "yes" and the French "oui", after trim and lowercase.
func isYes(valueText string) bool {
	v := strings.ToLower(strings.TrimSpace(valueText))
	return v == "yes" || v == "oui"
}

// ComputeMotivationScore counts affirmative answers over the yes/no questions
// of a motivation test. maxScore is the number of yes/no questions; when zero,
// both fields are nil. applyReversed inverts the point for questions flagged
// IsReversed (an affirmative scores 0, anything else scores 1).
func ComputeMotivationScore(questions []domain.TestQuestion, answers []domain.TestAnswer, applyReversed bool) MotivationScore {
	byQuestion := answersByQuestion(answers)
	score, max := 0, 0
	for _, q := range questions {
		if q.Kind != domain.QuestionYesNo {
			continue
		}
		max++
		if pointFor(q, byQuestion[q.ID], applyReversed) {
			score++
		}
	}
	if max == 0 {
		return MotivationScore{}
	}
	return MotivationScore{NumericScore: &score, MaxScore: &max}
}

// ComputeMotivationScoreByDimension runs the same counting grouped by each
// question's dimension code, defaulting ungrouped questions to DefaultDimension.
// The per-dimension scores always sum to the global total.
func ComputeMotivationScoreByDimension(questions []domain.TestQuestion, answers []domain.TestAnswer, applyReversed bool) (map[string]DimensionScore, MotivationScore) {
	byQuestion := answersByQuestion(answers)
	dims := make(map[string]DimensionScore)
	score, max := 0, 0
	for _, q := range questions {
		if q.Kind != domain.QuestionYesNo {
			continue
		}
		code := q.DimensionCode
		if code == "" {
			code = DefaultDimension
		}
		d := dims[code]
		d.MaxScore++
		max++
		if pointFor(q, byQuestion[q.ID], applyReversed) {
			d.NumericScore++
			score++
		}
		dims[code] = d
	}
	if max == 0 {
		return dims, MotivationScore{}
	}
	return dims, MotivationScore{NumericScore: &score, MaxScore: &max}
}

func pointFor(q domain.TestQuestion, a domain.TestAnswer, applyReversed bool) bool {
	yes := isYes(a.ValueText)
	if applyReversed && q.IsReversed {
		return !yes
	}
	return yes
}

func answersByQuestion(answers []domain.TestAnswer) map[string]domain.TestAnswer {
	m := make(map[string]domain.TestAnswer, len(answers))
	for _, a := range answers {
		m[a.QuestionID] = a
	}
	return m
}
