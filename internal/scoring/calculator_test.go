package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindcoach/internal/catalog"
	"mindcoach/internal/models"
)

const testCatalog = `
quiz_items:
  - id: q1
    construct: focus_control
  - id: q2
    construct: focus_control
  - id: r1
    construct: resilience
    reverse: true
  - id: s1
    construct: stress_regulation
archetypes:
  - id: focus
    constructs: [focus_control]
  - id: resilience
    constructs: [resilience]
`

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	return NewCalculator(c)
}

func TestCalculateScoresLikertMapping(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name      string
		answer    models.Answer
		construct models.Construct
		want      int
	}{
		{"forward 1", models.Answer{QuestionID: "q1", Value: 1}, models.FocusControl, 0},
		{"forward 3", models.Answer{QuestionID: "q1", Value: 3}, models.FocusControl, 50},
		{"forward 5", models.Answer{QuestionID: "q1", Value: 5}, models.FocusControl, 100},
		{"reverse 1", models.Answer{QuestionID: "r1", Value: 1}, models.Resilience, 100},
		{"reverse 3", models.Answer{QuestionID: "r1", Value: 3}, models.Resilience, 50},
		{"reverse 5", models.Answer{QuestionID: "r1", Value: 5}, models.Resilience, 0},
		{"forward 2", models.Answer{QuestionID: "s1", Value: 2}, models.StressRegulation, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := calc.CalculateScores([]models.Answer{tt.answer})
			assert.Equal(t, tt.want, scores[tt.construct])
		})
	}
}

func TestCalculateScoresAveragesConstruct(t *testing.T) {
	calc := newTestCalculator(t)

	scores := calc.CalculateScores([]models.Answer{
		{QuestionID: "q1", Value: 5},
		{QuestionID: "q2", Value: 3},
	})

	assert.Equal(t, 75, scores[models.FocusControl])
	for _, c := range models.AllConstructs {
		if c != models.FocusControl {
			assert.Equal(t, 0, scores[c], "construct %s", c)
		}
	}
}

func TestCalculateScoresAlwaysHasSevenKeys(t *testing.T) {
	calc := newTestCalculator(t)

	inputs := [][]models.Answer{
		nil,
		{{QuestionID: "unknown", Value: 4}},
		{{QuestionID: "q1", Value: 4}, {QuestionID: "r1", Value: 2}, {QuestionID: "s1", Value: 5}},
	}

	for _, answers := range inputs {
		scores := calc.CalculateScores(answers)
		require.NoError(t, scores.Validate())
	}
}

func TestCalculateScoresIgnoresUnknownQuestions(t *testing.T) {
	calc := newTestCalculator(t)

	scores := calc.CalculateScores([]models.Answer{
		{QuestionID: "q1", Value: 4},
		{QuestionID: "q99", Value: 1},
	})

	assert.Equal(t, 75, scores[models.FocusControl])
}

func TestCalculateScoresRoundsHalfUp(t *testing.T) {
	calc := newTestCalculator(t)

	// mean 1.5 -> 12.5 -> 13
	scores := calc.CalculateScores([]models.Answer{
		{QuestionID: "q1", Value: 1},
		{QuestionID: "q2", Value: 2},
	})
	assert.Equal(t, 13, scores[models.FocusControl])
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 3, RoundHalfUp(2.5))
	assert.Equal(t, -2, RoundHalfUp(-2.5))
	assert.Equal(t, 104, RoundHalfUp(104.0000001))
	assert.Equal(t, 0, RoundHalfUp(0.49))
}

func TestWithArticle(t *testing.T) {
	assert.Equal(t, "a student", WithArticle("student"))
	assert.Equal(t, "an entrepreneur", WithArticle("entrepreneur"))
	assert.Equal(t, "an individual", WithArticle("individual"))
}
