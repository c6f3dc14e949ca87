package repository

import (
	"context"

	"github.com/vytor/birdguide/internal/models"
)

// ProgressRepository handles per-species progress data access.
// Create and Update report false when another writer got there first.
type ProgressRepository interface {
	Get(ctx context.Context, userID, speciesID int64) (*models.Progress, error)
	Create(ctx context.Context, p models.Progress) (bool, error)
	Update(ctx context.Context, p models.Progress) (bool, error)
	Totals(ctx context.Context, userID int64) (models.ProgressTotals, error)
}
