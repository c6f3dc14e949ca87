package repository

import (
	"context"
	"time"

	"github.com/vytor/birdguide/internal/models"
)

// SessionRepository handles flashcard session data access
type SessionRepository interface {
	Insert(ctx context.Context, session models.FlashcardSession) error
	Get(ctx context.Context, id string) (*models.FlashcardSession, error)
	Complete(ctx context.Context, session models.FlashcardSession) (bool, error)
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]models.FlashcardSession, error)
}
