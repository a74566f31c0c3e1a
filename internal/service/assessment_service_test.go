package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindcoach/internal/catalog"
	"mindcoach/internal/event"
	"mindcoach/internal/matching"
	"mindcoach/internal/models"
	"mindcoach/internal/validation"
)

func TestScoreReverseItem(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.assessment.Score(context.Background(), "", []models.Answer{
		{QuestionID: "q3", Value: 5},
		{QuestionID: "q4", Value: 1},
	}, "")
	require.NoError(t, err)

	assert.Equal(t, 100, result.Scores[models.FocusControl])
	assert.Equal(t, 0, result.Scores[models.StressRegulation])
	assert.Len(t, result.Scores, len(models.AllConstructs))
	assert.Nil(t, result.PersonalityInsight)
	assert.Equal(t, []string{event.QuizScored}, env.publisher.types())
}

func TestScorePersonalityInsight(t *testing.T) {
	env := newTestEnv(t)
	answers := allHighAnswers(env.catalog)

	known, err := env.assessment.Score(context.Background(), "", answers, "students")
	require.NoError(t, err)
	require.NotNil(t, known.PersonalityInsight)
	assert.Contains(t, *known.PersonalityInsight, "student")

	unknown, err := env.assessment.Score(context.Background(), "", answers, "astronauts")
	require.NoError(t, err)
	require.NotNil(t, unknown.PersonalityInsight)
	assert.Contains(t, *unknown.PersonalityInsight, "individual")
}

func TestScoreRejectsInvalidAnswers(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		answers []models.Answer
	}{
		{"value too high", []models.Answer{{QuestionID: "q1", Value: 6}}},
		{"value too low", []models.Answer{{QuestionID: "q1", Value: 0}}},
		{"blank question", []models.Answer{{QuestionID: "", Value: 3}}},
		{"duplicate question", []models.Answer{{QuestionID: "q1", Value: 3}, {QuestionID: "q1", Value: 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.assessment.Score(context.Background(), "", tt.answers, "")
			var verr validation.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
	assert.Empty(t, env.publisher.types())
}

func TestMatchStudentsFocus(t *testing.T) {
	env := newTestEnv(t)
	scores := models.NewScoreSet()
	scores[models.FocusControl] = 80

	result, err := env.assessment.Match(context.Background(), "", matching.Request{
		PersonaID: "students",
		Scores:    scores,
		Goals:     []string{"Improve focus"},
	})
	require.NoError(t, err)

	// 0.30 * 80 * 1.3
	assert.Equal(t, "focus", result.PrimaryArchetype.ID())
	assert.Equal(t, 31, result.Confidence)
	assert.Contains(t, result.Rationale, "Focus Coach")
	assert.Contains(t, result.Rationale, "(80%)")
	assert.Equal(t, []string{event.CoachMatched}, env.publisher.types())
}

func TestMatchErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.assessment.Match(ctx, "", matching.Request{Scores: models.NewScoreSet()})
	var verr validation.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = env.assessment.Match(ctx, "", matching.Request{PersonaID: "students", Scores: models.ScoreSet{models.FocusControl: 80}})
	assert.ErrorAs(t, err, &verr)

	_, err = env.assessment.Match(ctx, "", matching.Request{PersonaID: "astronauts", Scores: models.NewScoreSet()})
	var notFound *catalog.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCompleteQuizRequiresOnboarding(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, err := env.states.Register(ctx)
	require.NoError(t, err)

	_, err = env.assessment.CompleteQuiz(ctx, userID, allHighAnswers(env.catalog), "")
	var verr validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "persona", verr.Field)
}

func TestCompleteQuizStoresMatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, err := env.states.Register(ctx)
	require.NoError(t, err)

	_, err = env.assessment.Onboard(ctx, userID, "students", []string{"Ace exams"})
	require.NoError(t, err)

	outcome, err := env.assessment.CompleteQuiz(ctx, userID, allHighAnswers(env.catalog), "")
	require.NoError(t, err)

	// focus 0.30*100*1.3 = 39, resilience (0.20+0.15)*100 = 35
	assert.Equal(t, "focus", outcome.Match.PrimaryArchetype.ID())
	assert.Equal(t, 39, outcome.Match.Confidence)
	assert.Equal(t, "resilience", outcome.Match.SecondaryArchetype.ID())

	assert.True(t, outcome.State.QuizComplete)
	require.NotNil(t, outcome.State.PrimaryArchetype)
	assert.Equal(t, "focus", outcome.State.PrimaryArchetype.ID)
	assert.Equal(t, "Focus Coach", outcome.State.PrimaryArchetype.Name)
	assert.Equal(t, 39, outcome.State.PrimaryArchetype.Confidence)
	assert.Equal(t, outcome.Scores, outcome.State.QuizScores)

	assert.Equal(t, []string{
		"state.onboarding.completed",
		event.QuizScored,
		event.CoachMatched,
		"state.quiz.completed",
	}, env.publisher.types())
}

func TestCompleteQuizPreferencePromotesArchetype(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, err := env.states.Register(ctx)
	require.NoError(t, err)
	_, err = env.assessment.Onboard(ctx, userID, "students", nil)
	require.NoError(t, err)

	outcome, err := env.assessment.CompleteQuiz(ctx, userID, allHighAnswers(env.catalog), "resilience")
	require.NoError(t, err)
	assert.Equal(t, "resilience", outcome.Match.PrimaryArchetype.ID())
}

func TestOnboardRejectsUnknownPersona(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, err := env.states.Register(ctx)
	require.NoError(t, err)

	_, err = env.assessment.Onboard(ctx, userID, "astronauts", nil)
	var notFound *catalog.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = env.assessment.Onboard(ctx, userID, "students", []string{"  "})
	var verr validation.ValidationError
	assert.ErrorAs(t, err, &verr)
}
