package repository

import (
	"context"
	"time"

	"github.com/vytor/birdguide/internal/models"
)

// BadgeRepository handles badge data access
type BadgeRepository interface {
	GetByName(ctx context.Context, name string) (*models.Badge, error)
	HasBadge(ctx context.Context, userID, badgeID int64) (bool, error)
	Award(ctx context.Context, userID, badgeID int64, at time.Time) (bool, error)
	ListForUser(ctx context.Context, userID int64) ([]models.BadgeWithEarned, error)
}
