package service

import (
	"context"
	"strings"

	"mindcoach/internal/catalog"
	"mindcoach/internal/models"
	"mindcoach/internal/progress"
	"mindcoach/internal/scoring"
	"mindcoach/internal/state"
	"mindcoach/internal/validation"
)

// SessionInput is a finished mind gym exercise
type SessionInput struct {
	ExerciseID string
	Reflection *string
	Rating     *int
}

// CheckInInput is a daily happiness check-in
type CheckInInput struct {
	Score            float64
	Mood             float64
	MindGymCompleted bool
	CoachFeedback    *float64
}

// ProgressReport is the KPI snapshot plus its narrative
type ProgressReport struct {
	KPIs             models.KPIData `json:"kpis"`
	StreakMessage    string         `json:"streakMessage"`
	HappinessMessage string         `json:"happinessMessage"`
	WeeklyInsight    string         `json:"weeklyInsight"`
}

// PracticeService records mind gym practice and check-ins and reports progress
type PracticeService struct {
	catalog    *catalog.Catalog
	states     *StateService
	aggregator *progress.Aggregator
}

// NewPracticeService creates a new practice service
func NewPracticeService(c *catalog.Catalog, states *StateService) *PracticeService {
	return &PracticeService{
		catalog:    c,
		states:     states,
		aggregator: progress.NewAggregator(c.ExerciseLabels(), states.Location()).WithClock(states.Now),
	}
}

// RecordSession appends a completed exercise to the user's log and updates the streak
func (s *PracticeService) RecordSession(ctx context.Context, userID string, in SessionInput) (state.AppState, error) {
	if err := validation.ValidateRequired("exerciseId", in.ExerciseID); err != nil {
		return state.AppState{}, err
	}
	if _, err := s.catalog.Exercise(in.ExerciseID); err != nil {
		return state.AppState{}, err
	}
	if err := validation.ValidateRating(in.Rating); err != nil {
		return state.AppState{}, err
	}
	if in.Reflection != nil {
		trimmed := strings.TrimSpace(*in.Reflection)
		if trimmed == "" {
			in.Reflection = nil
		} else {
			in.Reflection = &trimmed
		}
	}

	return s.states.Apply(ctx, userID, state.MindGymSessionCompleted{
		ExerciseID:  in.ExerciseID,
		Reflection:  in.Reflection,
		Rating:      in.Rating,
		CompletedAt: s.states.Now(),
	})
}

// RecordCheckIn stores today's happiness check-in, replacing an earlier one from the same day
func (s *PracticeService) RecordCheckIn(ctx context.Context, userID string, in CheckInInput) (state.AppState, error) {
	if err := validation.ValidateHappiness("score", in.Score); err != nil {
		return state.AppState{}, err
	}
	if err := validation.ValidateHappiness("mood", in.Mood); err != nil {
		return state.AppState{}, err
	}
	if in.CoachFeedback != nil {
		if err := validation.ValidateHappiness("coachFeedback", *in.CoachFeedback); err != nil {
			return state.AppState{}, err
		}
	}

	return s.states.Apply(ctx, userID, state.HappinessScoreAdded{
		Score:            in.Score,
		Mood:             in.Mood,
		MindGymCompleted: in.MindGymCompleted,
		CoachFeedback:    in.CoachFeedback,
		RecordedAt:       s.states.Now(),
	})
}

// RecordFeedback stores a thumbs up or down for a coach message
func (s *PracticeService) RecordFeedback(ctx context.Context, userID, messageID string, positive bool) (state.AppState, error) {
	if err := validation.ValidateRequired("messageId", messageID); err != nil {
		return state.AppState{}, err
	}
	return s.states.Apply(ctx, userID, state.CoachFeedbackSet{MessageID: messageID, Positive: positive})
}

// ToggleNotifications flips the weekly digest opt-in
func (s *PracticeService) ToggleNotifications(ctx context.Context, userID string) (state.AppState, error) {
	return s.states.Apply(ctx, userID, state.NotificationsToggled{})
}

// SetContactEmail stores the digest address; an empty address clears it
func (s *PracticeService) SetContactEmail(ctx context.Context, userID, email string) (state.AppState, error) {
	email = strings.TrimSpace(email)
	if email != "" {
		if err := validation.ValidateEmail(email); err != nil {
			return state.AppState{}, err
		}
	}
	return s.states.Apply(ctx, userID, state.ContactEmailSet{Email: email})
}

// Report computes the user's KPIs and narrative
func (s *PracticeService) Report(ctx context.Context, userID string) (*ProgressReport, error) {
	current, err := s.states.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ReportFor(current), nil
}

// ReportFor computes the report for an already loaded state.
// The stored streak is re-derived so a missed day shows as 0 without a new session.
func (s *PracticeService) ReportFor(current state.AppState) *ProgressReport {
	now, loc := s.states.Now(), s.states.Location()
	streak := progress.CurrentStreak(current.MindGymSessions, now, loc)
	kpis := s.aggregator.Calculate(current.MindGymSessions, current.HappinessHistory, current.CoachSatisfaction, streak)

	// today's check-in wins over the all-time average
	happiness := kpis.AverageHappinessScore * happinessPercentScale
	if today, ok := todaysCheckIn(current.HappinessHistory, models.DayKeyOf(now, loc)); ok {
		happiness = scoring.RoundHalfUp(today.Score * happinessPercentScale)
	}

	return &ProgressReport{
		KPIs:             kpis,
		StreakMessage:    progress.StreakMessage(kpis.CurrentStreak),
		HappinessMessage: progress.HappinessScoreMessage(happiness),
		WeeklyInsight:    progress.WeeklyInsight(kpis),
	}
}

// happinessPercentScale maps the 0-10 check-in scale onto the 0-100 message scale
const happinessPercentScale = 10

func todaysCheckIn(history []models.HappinessScore, today models.DayKey) (models.HappinessScore, bool) {
	for _, h := range history {
		if h.Date == today {
			return h, true
		}
	}
	return models.HappinessScore{}, false
}
