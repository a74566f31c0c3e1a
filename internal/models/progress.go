package models

import "time"

// DayLayout is the calendar-day key format
const DayLayout = "2006-01-02"

// DayKey identifies a calendar day, formatted as DayLayout
type DayKey string

// DayKeyOf returns the calendar day of t in loc
func DayKeyOf(t time.Time, loc *time.Location) DayKey {
	return DayKey(t.In(loc).Format(DayLayout))
}

// Start returns local midnight of the day in loc
func (d DayKey) Start(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, string(d), loc)
}

// MindGymSession is an append-only record of a finished practice exercise
type MindGymSession struct {
	ExerciseID  string    `json:"exerciseId"`
	CompletedAt time.Time `json:"completedAt"`
	Reflection  *string   `json:"reflection,omitempty"`
	Rating      *int      `json:"rating,omitempty"`
}

// HappinessScore is a self-reported daily check-in
type HappinessScore struct {
	Date             DayKey   `json:"date"`
	Score            float64  `json:"score"`
	Mood             float64  `json:"mood"`
	MindGymCompleted bool     `json:"mindGymCompleted"`
	CoachFeedback    *float64 `json:"coachFeedback,omitempty"`
}

// KPIData is the aggregated progress snapshot
type KPIData struct {
	WeeklyMindGymSessions    int    `json:"weeklyMindGymSessions"`
	CurrentStreak            int    `json:"currentStreak"`
	CoachSatisfactionRate    int    `json:"coachSatisfactionRate"`
	HappinessScoreDelta7Day  int    `json:"happinessScoreDelta7Day"`
	HappinessScoreDelta30Day int    `json:"happinessScoreDelta30Day"`
	AverageHappinessScore    int    `json:"averageHappinessScore"`
	TotalSessions            int    `json:"totalSessions"`
	FavoriteExerciseType     string `json:"favoriteExerciseType"`
}

// Exercise is a mind gym practice from the catalog
type Exercise struct {
	ID              string    `json:"id" yaml:"id"`
	Name            string    `json:"name" yaml:"name"`
	Label           string    `json:"label" yaml:"label"`
	DurationMinutes int       `json:"duration" yaml:"duration"`
	Construct       Construct `json:"construct" yaml:"construct"`
	Steps           []string  `json:"steps" yaml:"steps"`
}
