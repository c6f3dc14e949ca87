package sqlrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/repository"
)

const progressColumns = `id, user_id, species_id, times_seen, times_correct, accuracy, mastery_level, is_mastered, last_seen, version`

type progressRepository struct {
	q sqlx.ExtContext
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(q sqlx.ExtContext) repository.ProgressRepository {
	return &progressRepository{q: q}
}

func (r *progressRepository) Get(ctx context.Context, userID, speciesID int64) (*models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%d, species_id=%d", userID, speciesID)

	var p models.Progress
	err := sqlx.GetContext(ctx, r.q, &p, r.q.Rebind(`
SELECT `+progressColumns+`
FROM user_species_progress
WHERE user_id = ? AND species_id = ?
`), userID, speciesID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) Create(ctx context.Context, p models.Progress) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("creating progress: user_id=%d, species_id=%d", p.UserID, p.SpeciesID)

	created, err := execAffected(ctx, r.q, `
INSERT INTO user_species_progress (user_id, species_id, times_seen, times_correct, accuracy, mastery_level, is_mastered, last_seen, version)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)
ON CONFLICT (user_id, species_id) DO NOTHING
`, p.UserID, p.SpeciesID, p.TimesSeen, p.TimesCorrect, p.Accuracy, p.MasteryLevel, p.IsMastered, p.LastSeen)
	if err != nil {
		log.Error("failed to create progress: %v", err)
		return false, err
	}
	if !created {
		log.Debug("progress row already exists: user_id=%d, species_id=%d", p.UserID, p.SpeciesID)
	}
	return created, nil
}

func (r *progressRepository) Update(ctx context.Context, p models.Progress) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("updating progress: id=%d, version=%d, level=%d", p.ID, p.Version, p.MasteryLevel)

	updated, err := execAffected(ctx, r.q, `
UPDATE user_species_progress
SET times_seen = ?, times_correct = ?, accuracy = ?, mastery_level = ?, is_mastered = ?, last_seen = ?, version = version + 1
WHERE id = ? AND version = ?
`, p.TimesSeen, p.TimesCorrect, p.Accuracy, p.MasteryLevel, p.IsMastered, p.LastSeen, p.ID, p.Version)
	if err != nil {
		log.Error("failed to update progress: %v", err)
		return false, err
	}
	if !updated {
		log.Warn("progress version mismatch: id=%d, version=%d", p.ID, p.Version)
	}
	return updated, nil
}

func (r *progressRepository) Totals(ctx context.Context, userID int64) (models.ProgressTotals, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("computing progress totals: user_id=%d", userID)

	var t models.ProgressTotals
	err := sqlx.GetContext(ctx, r.q, &t, r.q.Rebind(`
SELECT
    COUNT(*) AS total_species,
    COALESCE(SUM(CASE WHEN is_mastered THEN 1 ELSE 0 END), 0) AS mastered_species,
    COALESCE(SUM(times_seen), 0) AS times_seen,
    COALESCE(SUM(times_correct), 0) AS times_correct
FROM user_species_progress
WHERE user_id = ?
`), userID)
	if err != nil {
		log.Error("failed to compute progress totals: %v", err)
		return t, err
	}
	return t, nil
}
