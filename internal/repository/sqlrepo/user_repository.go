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

const userColumns = `id, auth0_id, email, username, locale, xp, current_streak, longest_streak, last_active_on, is_admin, created_at, updated_at, deleted_at`

type userRepository struct {
	q sqlx.ExtContext
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(q sqlx.ExtContext) repository.UserRepository {
	return &userRepository{q: q}
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)
	return r.getBy(ctx, log, `id = ?`, id)
}

func (r *userRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user by auth0 id: %s", auth0ID)
	return r.getBy(ctx, log, `auth0_id = ?`, auth0ID)
}

func (r *userRepository) getBy(ctx context.Context, log *logger.Logger, cond string, arg any) (*models.User, error) {
	var u models.User
	err := sqlx.GetContext(ctx, r.q, &u, r.q.Rebind(`SELECT `+userColumns+` FROM users WHERE `+cond), arg)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: %v", arg)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	var n int
	err := sqlx.GetContext(ctx, r.q, &n, r.q.Rebind(`SELECT COUNT(*) FROM users WHERE username = ?`), username)
	if err != nil {
		log.Error("failed to check username: %v", err)
		return false, err
	}
	return n > 0, nil
}

func (r *userRepository) Upsert(ctx context.Context, u models.UserUpsert) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("upserting user: auth0_id=%s", u.Auth0ID)

	var user models.User
	err := r.q.QueryRowxContext(ctx, r.q.Rebind(`
INSERT INTO users (auth0_id, email, username, locale)
VALUES (?, ?, ?, ?)
ON CONFLICT (auth0_id) DO UPDATE SET email = excluded.email, updated_at = CURRENT_TIMESTAMP
RETURNING `+userColumns), u.Auth0ID, u.Email, u.Username, u.Locale).StructScan(&user)
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, err
	}
	log.Debug("user upserted: id=%d", user.ID)
	return &user, nil
}

func (r *userRepository) UpdateGamification(ctx context.Context, upd models.GamificationUpdate) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("updating gamification: user_id=%d, xp=%d, streak=%d", upd.UserID, upd.XP, upd.CurrentStreak)

	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
UPDATE users
SET xp = ?, current_streak = ?, longest_streak = ?, last_active_on = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`), upd.XP, upd.CurrentStreak, upd.LongestStreak, upd.LastActiveOn, upd.UserID)
	if err != nil {
		log.Error("failed to update gamification: %v", err)
	}
	return err
}

func (r *userRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("soft deleting user: id=%d", id)

	_, err := r.q.ExecContext(ctx, r.q.Rebind(`UPDATE users SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`), at, id)
	if err != nil {
		log.Error("failed to delete user: %v", err)
	}
	return err
}
