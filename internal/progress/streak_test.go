package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mindcoach/internal/models"
)

func TestCurrentStreak(t *testing.T) {
	now := time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)
	at := func(daysBack, hour int) time.Time {
		return time.Date(2026, 5, 20-daysBack, hour, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		sessions []models.MindGymSession
		want     int
	}{
		{name: "no sessions", sessions: nil, want: 0},
		{
			name:     "nothing today",
			sessions: []models.MindGymSession{session("box_breathing", at(1, 8))},
			want:     0,
		},
		{
			name: "today only, twice",
			sessions: []models.MindGymSession{
				session("box_breathing", at(0, 7)),
				session("micro_win", at(0, 8)),
			},
			want: 1,
		},
		{
			name: "three consecutive days",
			sessions: []models.MindGymSession{
				session("box_breathing", at(2, 22)),
				session("box_breathing", at(1, 6)),
				session("box_breathing", at(0, 8)),
			},
			want: 3,
		},
		{
			name: "gap breaks the run",
			sessions: []models.MindGymSession{
				session("box_breathing", at(4, 10)),
				session("box_breathing", at(3, 10)),
				session("box_breathing", at(1, 10)),
				session("box_breathing", at(0, 8)),
			},
			want: 2,
		},
		{
			name: "old run only",
			sessions: []models.MindGymSession{
				session("box_breathing", time.Date(2026, 4, 30, 10, 0, 0, 0, time.UTC)),
				session("box_breathing", time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentStreak(tt.sessions, now, time.UTC))
		})
	}
}

func TestCurrentStreakAcrossMonthBoundary(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	sessions := []models.MindGymSession{
		session("box_breathing", time.Date(2026, 4, 29, 10, 0, 0, 0, time.UTC)),
		session("box_breathing", time.Date(2026, 4, 30, 10, 0, 0, 0, time.UTC)),
		session("box_breathing", time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)),
	}

	assert.Equal(t, 3, CurrentStreak(sessions, now, time.UTC))
}

func TestCurrentStreakUsesLocalDays(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 16:00 UTC on the 19th is already the 20th in Tokyo
	sessions := []models.MindGymSession{
		session("box_breathing", time.Date(2026, 5, 19, 16, 0, 0, 0, time.UTC)),
	}
	now := time.Date(2026, 5, 20, 10, 0, 0, 0, tokyo)

	assert.Equal(t, 1, CurrentStreak(sessions, now, tokyo))
	assert.Equal(t, 0, CurrentStreak(sessions, now, time.UTC))
}
