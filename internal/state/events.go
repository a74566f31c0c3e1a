package state

import (
	"time"

	"mindcoach/internal/models"
	"mindcoach/internal/progress"
)

// Event is a user action that changes the record
type Event interface {
	// Name is the routing key suffix used when the event is published
	Name() string
	apply(s AppState, loc *time.Location) AppState
}

// OnboardingCompleted records the persona and goals picked during onboarding
type OnboardingCompleted struct {
	Persona string   `json:"persona"`
	Goals   []string `json:"goals"`
}

func (OnboardingCompleted) Name() string { return "onboarding.completed" }

func (e OnboardingCompleted) apply(s AppState, _ *time.Location) AppState {
	s.OnboardingComplete = true
	s.SelectedPersona = e.Persona
	s.SelectedGoals = append([]string{}, e.Goals...)
	return s
}

// QuizCompleted stores the scores and the matched coaches
type QuizCompleted struct {
	Scores    models.ScoreSet      `json:"scores"`
	Primary   *ArchetypeAssignment `json:"primary"`
	Secondary *ArchetypeAssignment `json:"secondary"`
}

func (QuizCompleted) Name() string { return "quiz.completed" }

func (e QuizCompleted) apply(s AppState, _ *time.Location) AppState {
	s.QuizComplete = true
	s.QuizScores = e.Scores.Clone()
	s.PrimaryArchetype = copyAssignment(e.Primary)
	s.SecondaryArchetype = copyAssignment(e.Secondary)
	return s
}

func copyAssignment(a *ArchetypeAssignment) *ArchetypeAssignment {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// MindGymSessionCompleted appends a session and recomputes the streak as of its completion
type MindGymSessionCompleted struct {
	ExerciseID  string    `json:"exerciseId"`
	Reflection  *string   `json:"reflection,omitempty"`
	Rating      *int      `json:"rating,omitempty"`
	CompletedAt time.Time `json:"completedAt"`
}

func (MindGymSessionCompleted) Name() string { return "mind_gym.completed" }

func (e MindGymSessionCompleted) apply(s AppState, loc *time.Location) AppState {
	s.MindGymSessions = append(s.MindGymSessions, models.MindGymSession{
		ExerciseID:  e.ExerciseID,
		CompletedAt: e.CompletedAt,
		Reflection:  e.Reflection,
		Rating:      e.Rating,
	})
	s.CurrentStreak = progress.CurrentStreak(s.MindGymSessions, e.CompletedAt, loc)
	return s
}

// HappinessScoreAdded records the day's check-in. A second check-in on the same day replaces the first.
type HappinessScoreAdded struct {
	Score            float64   `json:"score"`
	Mood             float64   `json:"mood"`
	MindGymCompleted bool      `json:"mindGymCompleted"`
	CoachFeedback    *float64  `json:"coachFeedback,omitempty"`
	RecordedAt       time.Time `json:"recordedAt"`
}

func (HappinessScoreAdded) Name() string { return "happiness.added" }

func (e HappinessScoreAdded) apply(s AppState, loc *time.Location) AppState {
	day := models.DayKeyOf(e.RecordedAt, loc)

	history := make([]models.HappinessScore, 0, len(s.HappinessHistory)+1)
	for _, h := range s.HappinessHistory {
		if h.Date != day {
			history = append(history, h)
		}
	}
	s.HappinessHistory = append(history, models.HappinessScore{
		Date:             day,
		Score:            e.Score,
		Mood:             e.Mood,
		MindGymCompleted: e.MindGymCompleted,
		CoachFeedback:    e.CoachFeedback,
	})
	return s
}

// CoachFeedbackSet records a thumbs up or down on a coach message
type CoachFeedbackSet struct {
	MessageID string `json:"messageId"`
	Positive  bool   `json:"positive"`
}

func (CoachFeedbackSet) Name() string { return "coach.feedback" }

func (e CoachFeedbackSet) apply(s AppState, _ *time.Location) AppState {
	s.CoachSatisfaction[e.MessageID] = e.Positive
	return s
}

// NotificationsToggled flips the notifications flag
type NotificationsToggled struct{}

func (NotificationsToggled) Name() string { return "notifications.toggled" }

func (NotificationsToggled) apply(s AppState, _ *time.Location) AppState {
	s.NotificationsEnabled = !s.NotificationsEnabled
	return s
}

// ContactEmailSet stores the address used for the weekly digest. Empty clears it.
type ContactEmailSet struct {
	Email string `json:"email"`
}

func (ContactEmailSet) Name() string { return "email.set" }

func (e ContactEmailSet) apply(s AppState, _ *time.Location) AppState {
	s.ContactEmail = e.Email
	return s
}

// Reset returns the record to its initial state
type Reset struct{}

func (Reset) Name() string { return "reset" }

func (Reset) apply(AppState, *time.Location) AppState {
	return Initial()
}

// Reduce applies e to a copy of s. Calendar days are taken in loc.
func Reduce(s AppState, e Event, loc *time.Location) AppState {
	if loc == nil {
		loc = time.Local
	}
	return e.apply(s.clone(), loc)
}
