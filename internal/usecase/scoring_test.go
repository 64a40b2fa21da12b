package usecase_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/hireflow/internal/domain"
	"github.com/fairyhunter13/hireflow/internal/usecase"
)

func yesNoQuestions(n int, dims ...string) []domain.TestQuestion {
	qs := make([]domain.TestQuestion, n)
	for i := range qs {
		dim := ""
		if len(dims) > 0 {
			dim = dims[i%len(dims)]
		}
		qs[i] = domain.TestQuestion{
			ID:            fmt.Sprintf("q%d", i+1),
			Kind:          domain.QuestionYesNo,
			OrderIndex:    i + 1,
			DimensionCode: dim,
		}
	}
	return qs
}

func answersFor(qs []domain.TestQuestion, text string) []domain.TestAnswer {
	out := make([]domain.TestAnswer, len(qs))
	for i, q := range qs {
		out[i] = domain.TestAnswer{QuestionID: q.ID, ValueText: text}
	}
	return out
}

func TestComputeMotivationScore_AllYes(t *testing.T) {
	t.Parallel()
	qs := yesNoQuestions(5)
	score := usecase.ComputeMotivationScore(qs, answersFor(qs, "yes"), false)
	require.NotNil(t, score.NumericScore)
	require.NotNil(t, score.MaxScore)
	assert.Equal(t, 5, *score.NumericScore)
	assert.Equal(t, 5, *score.MaxScore)
}

func TestComputeMotivationScore_AllNo(t *testing.T) {
	t.Parallel()
	qs := yesNoQuestions(4)
	score := usecase.ComputeMotivationScore(qs, answersFor(qs, "no"), false)
	require.NotNil(t, score.NumericScore)
	assert.Equal(t, 0, *score.NumericScore)
	assert.Equal(t, 4, *score.MaxScore)
}

func TestComputeMotivationScore_FrenchYesAndWhitespace(t *testing.T) {
	t.Parallel()
	qs := yesNoQuestions(2)
	answers := []domain.TestAnswer{
		{QuestionID: "q1", ValueText: "  OUI "},
		{QuestionID: "q2", ValueText: "Yes"},
	}
	score := usecase.ComputeMotivationScore(qs, answers, false)
	require.NotNil(t, score.NumericScore)
	assert.Equal(t, 2, *score.NumericScore)
}

func TestComputeMotivationScore_NoYesNoQuestions_NotApplicable(t *testing.T) {
	t.Parallel()
	qs := []domain.TestQuestion{
		{ID: "q1", Kind: domain.QuestionScale},
		{ID: "q2", Kind: domain.QuestionLongText},
	}
	score := usecase.ComputeMotivationScore(qs, answersFor(qs, "yes"), false)
	assert.Nil(t, score.NumericScore)
	assert.Nil(t, score.MaxScore)
}

func TestComputeMotivationScore_OtherKindsDoNotCount(t *testing.T) {
	t.Parallel()
	qs := append(yesNoQuestions(3), domain.TestQuestion{ID: "scale", Kind: domain.QuestionScale})
	answers := append(answersFor(qs[:3], "yes"), domain.TestAnswer{QuestionID: "scale", ValueText: "yes"})
	score := usecase.ComputeMotivationScore(qs, answers, false)
	require.NotNil(t, score.MaxScore)
	assert.Equal(t, 3, *score.MaxScore)
	assert.Equal(t, 3, *score.NumericScore)
}

func TestComputeMotivationScore_Reversed(t *testing.T) {
	t.Parallel()
	qs := yesNoQuestions(2)
	qs[0].IsReversed = true
	answers := answersFor(qs, "yes")

	// Flag off: reversal ignored, both answers count.
	off := usecase.ComputeMotivationScore(qs, answers, false)
	require.NotNil(t, off.NumericScore)
	assert.Equal(t, 2, *off.NumericScore)

	// Flag on: the reversed question's affirmative scores zero.
	on := usecase.ComputeMotivationScore(qs, answers, true)
	require.NotNil(t, on.NumericScore)
	assert.Equal(t, 1, *on.NumericScore)
}

func TestComputeMotivationScoreByDimension_SumsToGlobal(t *testing.T) {
	t.Parallel()
	qs := yesNoQuestions(6, "D1", "D2", "D3")
	answers := answersFor(qs, "yes")
	answers[0].ValueText = "no"
	answers[3].ValueText = "maybe"

	dims, global := usecase.ComputeMotivationScoreByDimension(qs, answers, false)
	require.NotNil(t, global.NumericScore)

	sum, maxSum := 0, 0
	for _, d := range dims {
		sum += d.NumericScore
		maxSum += d.MaxScore
	}
	assert.Equal(t, *global.NumericScore, sum)
	assert.Equal(t, *global.MaxScore, maxSum)
	assert.Equal(t, 6, maxSum)
}

func TestComputeMotivationScoreByDimension_UngroupedBucket(t *testing.T) {
	t.Parallel()
	qs := yesNoQuestions(3) // no dimension codes
	dims, global := usecase.ComputeMotivationScoreByDimension(qs, answersFor(qs, "oui"), false)
	require.Len(t, dims, 1)
	d, ok := dims[usecase.DefaultDimension]
	require.True(t, ok)
	assert.Equal(t, 3, d.NumericScore)
	assert.Equal(t, 3, d.MaxScore)
	require.NotNil(t, global.NumericScore)
	assert.Equal(t, 3, *global.NumericScore)
}
