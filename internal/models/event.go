package models

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventReview           EventType = "review"
	EventSessionStarted   EventType = "session_started"
	EventSessionCompleted EventType = "session_completed"
	EventBadgeEarned      EventType = "badge_earned"
	EventStreakUpdated    EventType = "streak_updated"
	EventXPGained         EventType = "xp_gained"
	EventSpeciesMastered  EventType = "species_mastered"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventReview, EventSessionStarted, EventSessionCompleted, EventBadgeEarned,
		EventStreakUpdated, EventXPGained, EventSpeciesMastered:
		return true
	}
	return false
}

type Event struct {
	ID        int64           `json:"id" db:"id"`
	UserID    int64           `json:"userId" db:"user_id"`
	EventType EventType       `json:"eventType" db:"event_type"`
	Payload   json.RawMessage `json:"payload" db:"payload"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}
