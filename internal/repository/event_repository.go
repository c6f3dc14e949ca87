package repository

import (
	"context"

	"github.com/vytor/birdguide/internal/models"
)

// EventRepository appends to the event log
type EventRepository interface {
	Insert(ctx context.Context, event models.Event) (int64, error)
}
