package sqlrepo

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/repository"
)

type reviewRepository struct {
	q sqlx.ExtContext
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(q sqlx.ExtContext) repository.ReviewRepository {
	return &reviewRepository{q: q}
}

func (r *reviewRepository) Insert(ctx context.Context, rv models.FlashcardReview) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("inserting review: user_id=%d, species_id=%d, result=%s", rv.UserID, rv.SpeciesID, rv.Result)

	id, err := insertReturningID(ctx, r.q, `
INSERT INTO flashcard_reviews (user_id, species_id, result, reviewed_at, response_time_ms, difficulty, interval_days, repetitions, ease_factor, next_review_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id
`, rv.UserID, rv.SpeciesID, string(rv.Result), rv.ReviewedAt, rv.ResponseTimeMS, rv.Difficulty, rv.IntervalDays, rv.Repetitions, rv.EaseFactor, rv.NextReviewDate)
	if err != nil {
		log.Error("failed to insert review: %v", err)
		return 0, err
	}
	log.Debug("review inserted: id=%d", id)
	return id, nil
}

func (r *reviewRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, r.q.Rebind(`SELECT COUNT(*) FROM flashcard_reviews WHERE user_id = ?`), userID); err != nil {
		log.Error("failed to count reviews: %v", err)
		return 0, err
	}
	log.Debug("user %d has %d reviews", userID, n)
	return n, nil
}

func (r *reviewRepository) CountResults(ctx context.Context, userID int64, speciesIDs []int64, from, to time.Time) (models.ReviewCounts, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("counting review results: user_id=%d, species=%d", userID, len(speciesIDs))

	var counts models.ReviewCounts
	if len(speciesIDs) == 0 {
		return counts, nil
	}

	query, args, err := builder(r.q).
		Select(
			"COALESCE(SUM(CASE WHEN result = 'correct' THEN 1 ELSE 0 END), 0) AS correct",
			"COALESCE(SUM(CASE WHEN result = 'incorrect' THEN 1 ELSE 0 END), 0) AS incorrect",
		).
		From("flashcard_reviews").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"species_id": speciesIDs}).
		Where(sq.GtOrEq{"reviewed_at": from}).
		Where(sq.LtOrEq{"reviewed_at": to}).
		ToSql()
	if err != nil {
		return counts, err
	}

	if err := sqlx.GetContext(ctx, r.q, &counts, query, args...); err != nil {
		log.Error("failed to count review results: %v", err)
		return counts, err
	}
	return counts, nil
}
