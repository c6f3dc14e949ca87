package mastery

import (
	"time"

	"github.com/vytor/birdguide/internal/models"
)

const (
	// MaxLevel is the level at which a species counts as mastered.
	MaxLevel = 5
	// LevelUpAccuracy and LevelUpMinSeen gate a level increase.
	LevelUpAccuracy = 0.8
	LevelUpMinSeen  = 5
)

// Apply returns the progress row after one more review. prev is nil when the
// user has never reviewed the species; the new row then starts at level 1.
// Mastery never decreases.
func Apply(prev *models.Progress, userID, speciesID int64, result models.ReviewResult, now time.Time) models.Progress {
	correct := result == models.ResultCorrect

	if prev == nil {
		p := models.Progress{
			UserID:       userID,
			SpeciesID:    speciesID,
			TimesSeen:    1,
			MasteryLevel: 1,
			LastSeen:     now,
		}
		if correct {
			p.TimesCorrect = 1
		}
		p.Accuracy = float64(p.TimesCorrect)
		return p
	}

	p := *prev
	p.TimesSeen++
	if correct {
		p.TimesCorrect++
	}
	p.Accuracy = Accuracy(p.TimesCorrect, p.TimesSeen)
	p.LastSeen = now

	if p.Accuracy >= LevelUpAccuracy && p.TimesSeen >= LevelUpMinSeen {
		p.MasteryLevel = min(p.MasteryLevel+1, MaxLevel)
		p.IsMastered = p.IsMastered || p.MasteryLevel >= MaxLevel
	}
	return p
}

// Accuracy is correct/seen, or 0 when nothing was seen.
func Accuracy(correct, seen int) float64 {
	if seen <= 0 {
		return 0
	}
	return float64(correct) / float64(seen)
}

// JustMastered reports whether the transition prev -> next crossed into mastery.
func JustMastered(prev *models.Progress, next models.Progress) bool {
	return next.IsMastered && (prev == nil || !prev.IsMastered)
}
