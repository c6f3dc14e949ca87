package sqlrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/repository"
)

const sessionColumns = `id, user_id, species_ids, started_at, completed_at, total_cards, correct_count, incorrect_count, accuracy, duration_seconds`

// sessionRow carries species_ids as its JSON text.
type sessionRow struct {
	models.FlashcardSession
	SpeciesIDsJSON string `db:"species_ids"`
}

func (row sessionRow) toModel() (models.FlashcardSession, error) {
	s := row.FlashcardSession
	if err := json.Unmarshal([]byte(row.SpeciesIDsJSON), &s.SpeciesIDs); err != nil {
		return s, fmt.Errorf("decode species ids for session %s: %w", s.ID, err)
	}
	return s, nil
}

type sessionRepository struct {
	q sqlx.ExtContext
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(q sqlx.ExtContext) repository.SessionRepository {
	return &sessionRepository{q: q}
}

func (r *sessionRepository) Insert(ctx context.Context, s models.FlashcardSession) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session: id=%s, user_id=%d, cards=%d", s.ID, s.UserID, len(s.SpeciesIDs))

	ids, err := json.Marshal(s.SpeciesIDs)
	if err != nil {
		return err
	}
	_, err = r.q.ExecContext(ctx, r.q.Rebind(`
INSERT INTO flashcard_sessions (id, user_id, species_ids, started_at, total_cards)
VALUES (?, ?, ?, ?, ?)
`), s.ID, s.UserID, string(ids), s.StartedAt, s.TotalCards)
	if err != nil {
		log.Error("failed to insert session: %v", err)
	}
	return err
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*models.FlashcardSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting session: id=%s", id)

	var row sessionRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`SELECT `+sessionColumns+` FROM flashcard_sessions WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("session not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	s, err := row.toModel()
	if err != nil {
		log.Error("failed to decode session: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Complete(ctx context.Context, s models.FlashcardSession) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("completing session: id=%s, correct=%d, incorrect=%d", s.ID, s.CorrectCount, s.IncorrectCount)

	completed, err := execAffected(ctx, r.q, `
UPDATE flashcard_sessions
SET completed_at = ?, total_cards = ?, correct_count = ?, incorrect_count = ?, accuracy = ?, duration_seconds = ?
WHERE id = ? AND completed_at IS NULL
`, s.CompletedAt, s.TotalCards, s.CorrectCount, s.IncorrectCount, s.Accuracy, s.DurationSeconds, s.ID)
	if err != nil {
		log.Error("failed to complete session: %v", err)
		return false, err
	}
	return completed, nil
}

func (r *sessionRepository) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]models.FlashcardSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("listing open sessions started before %s", cutoff.Format(time.RFC3339))

	var rows []sessionRow
	err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(`
SELECT `+sessionColumns+`
FROM flashcard_sessions
WHERE completed_at IS NULL AND started_at < ?
ORDER BY started_at
`), cutoff)
	if err != nil {
		log.Error("failed to list open sessions: %v", err)
		return nil, err
	}

	sessions := make([]models.FlashcardSession, 0, len(rows))
	for _, row := range rows {
		s, err := row.toModel()
		if err != nil {
			log.Error("failed to decode session: %v", err)
			return nil, err
		}
		sessions = append(sessions, s)
	}
	log.Debug("found %d open sessions", len(sessions))
	return sessions, nil
}
