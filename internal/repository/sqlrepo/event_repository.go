package sqlrepo

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/repository"
)

type eventRepository struct {
	q sqlx.ExtContext
}

// NewEventRepository creates a new EventRepository implementation
func NewEventRepository(q sqlx.ExtContext) repository.EventRepository {
	return &eventRepository{q: q}
}

func (r *eventRepository) Insert(ctx context.Context, e models.Event) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("event_repo")
	log.Debug("inserting event: user_id=%d, type=%s", e.UserID, e.EventType)

	// Payload goes in as text so it lands in both TEXT and JSONB columns.
	id, err := insertReturningID(ctx, r.q, `
INSERT INTO events (user_id, event_type, payload, created_at)
VALUES (?, ?, ?, ?)
RETURNING id
`, e.UserID, string(e.EventType), string(e.Payload), e.CreatedAt)
	if err != nil {
		log.Error("failed to insert event: %v", err)
		return 0, err
	}
	return id, nil
}
