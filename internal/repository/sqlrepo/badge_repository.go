package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/repository"
)

type badgeRepository struct {
	q sqlx.ExtContext
}

// NewBadgeRepository creates a new BadgeRepository implementation
func NewBadgeRepository(q sqlx.ExtContext) repository.BadgeRepository {
	return &badgeRepository{q: q}
}

func (r *badgeRepository) GetByName(ctx context.Context, name string) (*models.Badge, error) {
	log := logger.FromContext(ctx).WithPrefix("badge_repo")
	log.Debug("getting badge: name=%s", name)

	var b models.Badge
	err := sqlx.GetContext(ctx, r.q, &b, r.q.Rebind(`
SELECT id, name, title, description, icon, color, is_active
FROM badges
WHERE name = ?
`), name)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("badge not found: name=%s", name)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get badge: %v", err)
		return nil, err
	}
	return &b, nil
}

func (r *badgeRepository) HasBadge(ctx context.Context, userID, badgeID int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("badge_repo")

	var n int
	err := sqlx.GetContext(ctx, r.q, &n, r.q.Rebind(`SELECT COUNT(*) FROM user_badges WHERE user_id = ? AND badge_id = ?`), userID, badgeID)
	if err != nil {
		log.Error("failed to check user badge: %v", err)
		return false, err
	}
	return n > 0, nil
}

func (r *badgeRepository) Award(ctx context.Context, userID, badgeID int64, at time.Time) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("badge_repo")
	log.Debug("awarding badge: user_id=%d, badge_id=%d", userID, badgeID)

	awarded, err := execAffected(ctx, r.q, `
INSERT INTO user_badges (user_id, badge_id, earned_at)
VALUES (?, ?, ?)
ON CONFLICT (user_id, badge_id) DO NOTHING
`, userID, badgeID, at)
	if err != nil {
		log.Error("failed to award badge: %v", err)
		return false, err
	}
	return awarded, nil
}

func (r *badgeRepository) ListForUser(ctx context.Context, userID int64) ([]models.BadgeWithEarned, error) {
	log := logger.FromContext(ctx).WithPrefix("badge_repo")
	log.Debug("listing badges for user: user_id=%d", userID)

	var badges []models.BadgeWithEarned
	err := sqlx.SelectContext(ctx, r.q, &badges, r.q.Rebind(`
SELECT b.id, b.name, b.title, b.description, b.icon, b.color, b.is_active, ub.earned_at
FROM badges b
LEFT JOIN user_badges ub ON ub.badge_id = b.id AND ub.user_id = ?
WHERE b.is_active = ?
ORDER BY b.id
`), userID, true)
	if err != nil {
		log.Error("failed to list badges: %v", err)
		return nil, err
	}
	return badges, nil
}
