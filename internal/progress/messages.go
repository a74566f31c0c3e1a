package progress

import (
	"fmt"

	"mindcoach/internal/models"
)

// StreakMessage returns the encouragement line for a streak length
func StreakMessage(streak int) string {
	switch {
	case streak <= 0:
		return "Ready to start your journey?"
	case streak == 1:
		return "Great start! Keep going."
	case streak < 7:
		return fmt.Sprintf("%d days strong! Building momentum.", streak)
	case streak < 21:
		return fmt.Sprintf("%d days! You're forming a habit.", streak)
	case streak < 30:
		return fmt.Sprintf("%d days! Incredible consistency.", streak)
	default:
		return fmt.Sprintf("%d days! You're a happiness champion!", streak)
	}
}

// HappinessScoreMessage returns the narrative for a 0-100 happiness score
func HappinessScoreMessage(score int) string {
	switch {
	case score >= 80:
		return "You're thriving! Keep up the excellent work."
	case score >= 60:
		return "You're doing well. Small improvements compound."
	case score >= 40:
		return "You're making progress. Stay consistent."
	case score >= 20:
		return "Every step forward counts. You've got this."
	default:
		return "Starting your journey is the hardest part. Be kind to yourself."
	}
}

// WeeklyInsight combines a practice clause and a happiness trend clause
func WeeklyInsight(kpis models.KPIData) string {
	var practice string
	switch {
	case kpis.WeeklyMindGymSessions >= 5:
		practice = "🎉 Excellent commitment this week! "
	case kpis.WeeklyMindGymSessions >= 3:
		practice = "👏 Good consistency this week. "
	case kpis.WeeklyMindGymSessions >= 1:
		practice = "🌱 You're making progress. "
	default:
		practice = "💭 Ready for a fresh start? "
	}

	var trend string
	switch {
	case kpis.HappinessScoreDelta7Day > 5:
		trend = "Your happiness is trending upward - keep doing what's working!"
	case kpis.HappinessScoreDelta7Day > 0:
		trend = "Small positive changes are accumulating nicely."
	case kpis.HappinessScoreDelta7Day == 0:
		trend = "Consistency is key - you're maintaining your baseline well."
	default:
		trend = "This week was challenging, but tomorrow is a new opportunity."
	}

	return practice + trend
}
