package services

import (
	"context"
	"time"

	"github.com/vytor/birdguide/internal/errors"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/mastery"
	"github.com/vytor/birdguide/internal/metrics"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/repository"
)

// maxProgressAttempts bounds the read/apply/compare-and-swap loop.
const maxProgressAttempts = 3

// ProgressTracker maintains the per (user, species) counters.
type ProgressTracker struct {
	repo    repository.ProgressRepository
	metrics *metrics.Metrics
}

// NewProgressTracker creates a ProgressTracker over repo.
func NewProgressTracker(repo repository.ProgressRepository, m *metrics.Metrics) *ProgressTracker {
	return &ProgressTracker{repo: repo, metrics: m}
}

// ProgressChange is the result of one tracked review.
type ProgressChange struct {
	Progress     models.Progress
	JustMastered bool
}

// Update applies one review to the user's progress on a species. Writes are
// guarded by the row version; a lost race re-reads and re-applies.
func (t *ProgressTracker) Update(ctx context.Context, userID, speciesID int64, result models.ReviewResult, now time.Time) (*ProgressChange, error) {
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= maxProgressAttempts; attempt++ {
		current, err := t.repo.Get(ctx, userID, speciesID)
		if err != nil {
			log.Error("failed to read progress: %v", err)
			return nil, errors.NewInternalError(err)
		}

		next := mastery.Apply(current, userID, speciesID, result, now)

		var ok bool
		if current == nil {
			ok, err = t.repo.Create(ctx, next)
			next.Version = 1
		} else {
			ok, err = t.repo.Update(ctx, next)
			next.Version = current.Version + 1
		}
		if err != nil {
			log.Error("failed to write progress: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if ok {
			log.Debug("progress updated: user_id=%d, species_id=%d, seen=%d, level=%d",
				userID, speciesID, next.TimesSeen, next.MasteryLevel)
			return &ProgressChange{Progress: next, JustMastered: mastery.JustMastered(current, next)}, nil
		}

		t.metrics.RecordProgressConflict()
		log.Warn("progress write lost a race, retrying: user_id=%d, species_id=%d, attempt=%d", userID, speciesID, attempt)
	}

	return nil, errors.NewConflictError("progress was modified concurrently, please retry", nil)
}
