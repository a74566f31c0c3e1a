package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mindcoach/internal/models"
)

func TestStreakMessage(t *testing.T) {
	tests := []struct {
		streak int
		want   string
	}{
		{0, "Ready to start your journey?"},
		{1, "Great start! Keep going."},
		{2, "2 days strong! Building momentum."},
		{6, "6 days strong! Building momentum."},
		{7, "7 days! You're forming a habit."},
		{20, "20 days! You're forming a habit."},
		{21, "21 days! Incredible consistency."},
		{29, "29 days! Incredible consistency."},
		{30, "30 days! You're a happiness champion!"},
		{365, "365 days! You're a happiness champion!"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StreakMessage(tt.streak), "streak %d", tt.streak)
	}
}

func TestHappinessScoreMessage(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "You're thriving! Keep up the excellent work."},
		{80, "You're thriving! Keep up the excellent work."},
		{79, "You're doing well. Small improvements compound."},
		{60, "You're doing well. Small improvements compound."},
		{59, "You're making progress. Stay consistent."},
		{40, "You're making progress. Stay consistent."},
		{39, "Every step forward counts. You've got this."},
		{20, "Every step forward counts. You've got this."},
		{19, "Starting your journey is the hardest part. Be kind to yourself."},
		{0, "Starting your journey is the hardest part. Be kind to yourself."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HappinessScoreMessage(tt.score), "score %d", tt.score)
	}
}

func TestWeeklyInsight(t *testing.T) {
	tests := []struct {
		name     string
		sessions int
		delta    int
		want     string
	}{
		{"excellent and trending up", 5, 6, "🎉 Excellent commitment this week! Your happiness is trending upward - keep doing what's working!"},
		{"good and small gains", 3, 5, "👏 Good consistency this week. Small positive changes are accumulating nicely."},
		{"some progress and flat", 1, 0, "🌱 You're making progress. Consistency is key - you're maintaining your baseline well."},
		{"fresh start and down", 0, -1, "💭 Ready for a fresh start? This week was challenging, but tomorrow is a new opportunity."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kpis := models.KPIData{WeeklyMindGymSessions: tt.sessions, HappinessScoreDelta7Day: tt.delta}
			assert.Equal(t, tt.want, WeeklyInsight(kpis))
		})
	}
}
