// Package progress aggregates mind gym sessions and happiness check-ins into KPIs.
package progress

import (
	"sort"
	"time"

	"mindcoach/internal/models"
	"mindcoach/internal/scoring"
)

const (
	day = 24 * time.Hour

	noFavoriteExercise      = "None yet"
	unknownFavoriteExercise = "Various"
)

// Aggregator computes KPI snapshots from full history snapshots
type Aggregator struct {
	labels   map[string]string
	location *time.Location
	now      func() time.Time
}

// NewAggregator creates an aggregator using the exercise id -> label table.
// Day keys are interpreted in loc.
func NewAggregator(labels map[string]string, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.Local
	}
	return &Aggregator{labels: labels, location: loc, now: time.Now}
}

// WithClock returns a copy of the aggregator that reads the time from now
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	clone := *a
	clone.now = now
	return &clone
}

// Calculate derives the KPI snapshot. currentStreak is passed through unchanged.
func (a *Aggregator) Calculate(sessions []models.MindGymSession, history []models.HappinessScore, satisfaction map[string]bool, currentStreak int) models.KPIData {
	now := a.now()
	sevenDaysAgo := now.Add(-7 * day)
	thirtyDaysAgo := now.Add(-30 * day)

	weekly := 0
	for _, s := range sessions {
		if !s.CompletedAt.Before(sevenDaysAgo) {
			weekly++
		}
	}

	return models.KPIData{
		WeeklyMindGymSessions:    weekly,
		CurrentStreak:            currentStreak,
		CoachSatisfactionRate:    satisfactionRate(satisfaction),
		HappinessScoreDelta7Day:  happinessDelta(a.since(history, sevenDaysAgo)),
		HappinessScoreDelta30Day: happinessDelta(a.since(history, thirtyDaysAgo)),
		AverageHappinessScore:    averageHappiness(history),
		TotalSessions:            len(sessions),
		FavoriteExerciseType:     a.favoriteExercise(sessions),
	}
}

type datedScore struct {
	at    time.Time
	score float64
}

// since keeps entries whose day starts at or after cutoff; unparseable days are skipped
func (a *Aggregator) since(history []models.HappinessScore, cutoff time.Time) []datedScore {
	var out []datedScore
	for _, h := range history {
		start, err := h.Date.Start(a.location)
		if err != nil {
			continue
		}
		if !start.Before(cutoff) {
			out = append(out, datedScore{at: start, score: h.Score})
		}
	}
	return out
}

// happinessDelta is last minus first score of the window, ordered by date
func happinessDelta(window []datedScore) int {
	if len(window) < 2 {
		return 0
	}
	sort.SliceStable(window, func(i, j int) bool {
		return window[i].at.Before(window[j].at)
	})
	return scoring.RoundHalfUp(window[len(window)-1].score - window[0].score)
}

func averageHappiness(history []models.HappinessScore) int {
	if len(history) == 0 {
		return 0
	}
	sum := 0.0
	for _, h := range history {
		sum += h.Score
	}
	return scoring.RoundHalfUp(sum / float64(len(history)))
}

func satisfactionRate(satisfaction map[string]bool) int {
	if len(satisfaction) == 0 {
		return 0
	}
	positive := 0
	for _, v := range satisfaction {
		if v {
			positive++
		}
	}
	return scoring.RoundHalfUp(float64(positive) / float64(len(satisfaction)) * 100)
}

// favoriteExercise returns the label of the most frequent exercise; ties go to the first seen
func (a *Aggregator) favoriteExercise(sessions []models.MindGymSession) string {
	if len(sessions) == 0 {
		return noFavoriteExercise
	}

	counts := make(map[string]int)
	var order []string
	for _, s := range sessions {
		if _, seen := counts[s.ExerciseID]; !seen {
			order = append(order, s.ExerciseID)
		}
		counts[s.ExerciseID]++
	}

	favorite := order[0]
	for _, id := range order[1:] {
		if counts[id] > counts[favorite] {
			favorite = id
		}
	}

	if label, ok := a.labels[favorite]; ok && label != "" {
		return label
	}
	return unknownFavoriteExercise
}
