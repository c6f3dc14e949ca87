package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vytor/birdguide/internal/errors"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/repository"
)

// Event payloads.
type (
	reviewPayload struct {
		SpeciesID int64               `json:"speciesId"`
		Result    models.ReviewResult `json:"result"`
	}
	xpPayload struct {
		Amount int `json:"amount"`
		Total  int `json:"total"`
	}
	streakPayload struct {
		Current int `json:"current"`
		Longest int `json:"longest"`
	}
	masteredPayload struct {
		SpeciesID int64 `json:"speciesId"`
	}
	badgePayload struct {
		BadgeID   int64  `json:"badgeId"`
		BadgeName string `json:"badgeName"`
	}
	sessionStartedPayload struct {
		SessionID  string  `json:"sessionId"`
		SpeciesIDs []int64 `json:"speciesIds"`
	}
	sessionCompletedPayload struct {
		SessionID       string  `json:"sessionId"`
		Correct         int     `json:"correct"`
		Incorrect       int     `json:"incorrect"`
		Accuracy        float64 `json:"accuracy"`
		DurationSeconds int     `json:"durationSeconds"`
		Expired         bool    `json:"expired"`
	}
)

// EventLog appends domain events. It has no read path.
type EventLog struct {
	repo repository.EventRepository
	now  func() time.Time
}

// NewEventLog creates an EventLog writing through repo.
func NewEventLog(repo repository.EventRepository, now func() time.Time) *EventLog {
	return &EventLog{repo: repo, now: now}
}

// Log marshals payload to JSON and appends one event row.
func (l *EventLog) Log(ctx context.Context, userID int64, eventType models.EventType, payload any) error {
	log := logger.FromContext(ctx)

	if !eventType.Valid() {
		return errors.NewValidationError("eventType", fmt.Sprintf("unknown event type %q", eventType))
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return errors.NewInternalError(fmt.Errorf("encode %s payload: %w", eventType, err))
	}

	if _, err := l.repo.Insert(ctx, models.Event{
		UserID:    userID,
		EventType: eventType,
		Payload:   raw,
		CreatedAt: l.now(),
	}); err != nil {
		log.Error("failed to log %s event: %v", eventType, err)
		return errors.NewInternalError(err)
	}
	log.Debug("logged event: user_id=%d, type=%s", userID, eventType)
	return nil
}
