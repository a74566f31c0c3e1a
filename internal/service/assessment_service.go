package service

import (
	"context"
	"errors"
	"log"

	"mindcoach/internal/catalog"
	"mindcoach/internal/event"
	"mindcoach/internal/matching"
	"mindcoach/internal/metrics"
	"mindcoach/internal/models"
	"mindcoach/internal/scoring"
	"mindcoach/internal/state"
	"mindcoach/internal/validation"
)

// ScoreResult is the outcome of scoring a quiz submission
type ScoreResult struct {
	Scores             models.ScoreSet `json:"scores"`
	Insights           models.Insights `json:"insights"`
	PersonalityInsight *string         `json:"personalityInsight"`
}

// QuizOutcome is a scored quiz together with the coach match it produced
type QuizOutcome struct {
	ScoreResult
	Match *models.MatchResult `json:"match"`
	State state.AppState      `json:"state"`
}

// AssessmentService scores quizzes and matches coaches
type AssessmentService struct {
	catalog    *catalog.Catalog
	calculator *scoring.Calculator
	matcher    *matching.Matcher
	states     *StateService
	publisher  event.Publisher
	metrics    *metrics.Metrics
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(c *catalog.Catalog, states *StateService, publisher event.Publisher, m *metrics.Metrics) *AssessmentService {
	return &AssessmentService{
		catalog:    c,
		calculator: scoring.NewCalculator(c),
		matcher:    matching.NewMatcher(c),
		states:     states,
		publisher:  publisher,
		metrics:    m,
	}
}

// Score converts answers into construct scores and insights.
// A personality insight is only produced when a persona is given; unknown personas get generic wording.
func (s *AssessmentService) Score(ctx context.Context, userID string, answers []models.Answer, personaID string) (*ScoreResult, error) {
	if err := validation.ValidateAnswers(answers); err != nil {
		return nil, err
	}

	scores := s.calculator.CalculateScores(answers)
	result := &ScoreResult{
		Scores:   scores,
		Insights: scoring.GetInsights(scores),
	}

	if personaID != "" {
		persona, err := s.catalog.Persona(personaID)
		var notFound *catalog.NotFoundError
		if err != nil && !errors.As(err, &notFound) {
			return nil, err
		}
		insight := scoring.PersonalityInsight(scores, persona)
		result.PersonalityInsight = &insight
	}

	s.metrics.QuizScored()
	publish(ctx, s.publisher, s.metrics, event.QuizScored, userID, map[string]any{
		"persona": personaID,
		"scores":  scores,
	})
	return result, nil
}

// Match ranks the coach archetypes for a persona and score set
func (s *AssessmentService) Match(ctx context.Context, userID string, req matching.Request) (*models.MatchResult, error) {
	if err := validation.ValidatePersonaID(req.PersonaID); err != nil {
		return nil, err
	}
	if err := validation.ValidateScores(req.Scores); err != nil {
		return nil, err
	}
	if err := validation.ValidateGoals(req.Goals); err != nil {
		return nil, err
	}

	result, err := s.matcher.Match(req)
	if err != nil {
		return nil, err
	}

	s.metrics.CoachMatched(result.PrimaryArchetype.ID(), result.Confidence)
	publish(ctx, s.publisher, s.metrics, event.CoachMatched, userID, map[string]any{
		"persona":    req.PersonaID,
		"goals":      req.Goals,
		"preference": req.Preference,
		"primary":    result.PrimaryArchetype.ID(),
		"secondary":  result.SecondaryArchetype.ID(),
		"confidence": result.Confidence,
	})
	return result, nil
}

// CompleteQuiz scores the user's answers, matches them with the persona and goals chosen
// during onboarding, and stores the result
func (s *AssessmentService) CompleteQuiz(ctx context.Context, userID string, answers []models.Answer, preference string) (*QuizOutcome, error) {
	current, err := s.states.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !current.OnboardingComplete || current.SelectedPersona == "" {
		return nil, validation.ValidationError{Field: "persona", Message: "complete onboarding before the quiz"}
	}

	scored, err := s.Score(ctx, userID, answers, current.SelectedPersona)
	if err != nil {
		return nil, err
	}

	match, err := s.Match(ctx, userID, matching.Request{
		PersonaID:  current.SelectedPersona,
		Scores:     scored.Scores,
		Goals:      current.SelectedGoals,
		Preference: preference,
	})
	if err != nil {
		return nil, err
	}

	next, err := s.states.Apply(ctx, userID, state.QuizCompleted{
		Scores:    scored.Scores,
		Primary:   state.AssignmentOf(match.PrimaryArchetype),
		Secondary: state.AssignmentOf(match.SecondaryArchetype),
	})
	if err != nil {
		return nil, err
	}

	log.Printf("User %s completed the quiz: primary=%s confidence=%d", userID, match.PrimaryArchetype.ID(), match.Confidence)
	return &QuizOutcome{ScoreResult: *scored, Match: match, State: next}, nil
}

// Onboard validates and stores the persona and goals picked during onboarding
func (s *AssessmentService) Onboard(ctx context.Context, userID, personaID string, goals []string) (state.AppState, error) {
	if err := validation.ValidatePersonaID(personaID); err != nil {
		return state.AppState{}, err
	}
	if _, err := s.catalog.Persona(personaID); err != nil {
		return state.AppState{}, err
	}
	if err := validation.ValidateGoals(goals); err != nil {
		return state.AppState{}, err
	}
	return s.states.Apply(ctx, userID, state.OnboardingCompleted{Persona: personaID, Goals: goals})
}
