package repository

import (
	"context"
	"time"

	"github.com/vytor/birdguide/internal/models"
)

// ReviewRepository handles flashcard review data access
type ReviewRepository interface {
	Insert(ctx context.Context, review models.FlashcardReview) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	CountResults(ctx context.Context, userID int64, speciesIDs []int64, from, to time.Time) (models.ReviewCounts, error)
}
