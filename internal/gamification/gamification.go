package gamification

import (
	"time"

	"github.com/vytor/birdguide/internal/models"
)

const (
	XPCorrect   = 10
	XPIncorrect = 2
)

// XPForResult is the experience granted for one review.
func XPForResult(result models.ReviewResult) int {
	if result == models.ResultCorrect {
		return XPCorrect
	}
	return XPIncorrect
}

// NextStreak advances a daily streak. Days are compared as UTC calendar
// dates: activity on the same day leaves the streak as is, activity on the
// following day extends it, and anything later restarts it at 1.
func NextStreak(lastActive *time.Time, current, longest int, now time.Time) (int, int) {
	today := day(now)
	switch {
	case lastActive == nil:
		current = 1
	case day(*lastActive).Equal(today):
		if current < 1 {
			current = 1
		}
	case day(*lastActive).AddDate(0, 0, 1).Equal(today):
		current++
	default:
		current = 1
	}
	return current, max(longest, current)
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Apply computes the user's gamification state after one review.
func Apply(user models.User, result models.ReviewResult, now time.Time) models.GamificationUpdate {
	current, longest := NextStreak(user.LastActiveOn, user.CurrentStreak, user.LongestStreak, now)
	return models.GamificationUpdate{
		UserID:        user.ID,
		XP:            user.XP + XPForResult(result),
		CurrentStreak: current,
		LongestStreak: longest,
		LastActiveOn:  now,
	}
}
