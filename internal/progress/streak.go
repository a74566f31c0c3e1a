package progress

import (
	"time"

	"mindcoach/internal/models"
)

// CurrentStreak counts consecutive calendar days with at least one session,
// ending today. It is 0 when nothing was completed today.
func CurrentStreak(sessions []models.MindGymSession, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}

	days := make(map[models.DayKey]struct{}, len(sessions))
	for _, s := range sessions {
		days[models.DayKeyOf(s.CompletedAt, loc)] = struct{}{}
	}

	streak := 0
	y, m, d := now.In(loc).Date()
	for {
		key := models.DayKeyOf(time.Date(y, m, d-streak, 12, 0, 0, 0, loc), loc)
		if _, ok := days[key]; !ok {
			return streak
		}
		streak++
	}
}
