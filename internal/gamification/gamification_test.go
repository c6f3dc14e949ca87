package gamification_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/birdguide/internal/gamification"
	"github.com/vytor/birdguide/internal/models"
)

func ptr(t time.Time) *time.Time { return &t }

func TestXPForResult(t *testing.T) {
	assert.Equal(t, 10, gamification.XPForResult(models.ResultCorrect))
	assert.Equal(t, 2, gamification.XPForResult(models.ResultIncorrect))
}

func TestNextStreak(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		last        *time.Time
		current     int
		longest     int
		wantCurrent int
		wantLongest int
	}{
		{"first activity", nil, 0, 0, 1, 1},
		{"same day", ptr(now.Add(-2 * time.Hour)), 3, 5, 3, 5},
		{"next day", ptr(time.Date(2024, 5, 9, 23, 59, 0, 0, time.UTC)), 3, 3, 4, 4},
		{"gap resets", ptr(time.Date(2024, 5, 7, 12, 0, 0, 0, time.UTC)), 6, 6, 1, 6},
		{"longest kept", ptr(time.Date(2024, 5, 9, 1, 0, 0, 0, time.UTC)), 2, 9, 3, 9},
		{"long gap", ptr(time.Date(2024, 4, 30, 22, 0, 0, 0, time.UTC)), 1, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, longest := gamification.NextStreak(tt.last, tt.current, tt.longest, now)
			assert.Equal(t, tt.wantCurrent, current)
			assert.Equal(t, tt.wantLongest, longest)
		})
	}
}

func TestNextStreak_MonthBoundaryConsecutive(t *testing.T) {
	now := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	current, longest := gamification.NextStreak(ptr(time.Date(2024, 4, 30, 22, 0, 0, 0, time.UTC)), 4, 4, now)

	assert.Equal(t, 5, current)
	assert.Equal(t, 5, longest)
}

func TestApply(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	user := models.User{ID: 7, XP: 40, CurrentStreak: 2, LongestStreak: 2, LastActiveOn: ptr(now.AddDate(0, 0, -1))}

	upd := gamification.Apply(user, models.ResultCorrect, now)

	assert.Equal(t, int64(7), upd.UserID)
	assert.Equal(t, 50, upd.XP)
	assert.Equal(t, 3, upd.CurrentStreak)
	assert.Equal(t, 3, upd.LongestStreak)
	assert.Equal(t, now, upd.LastActiveOn)
}
