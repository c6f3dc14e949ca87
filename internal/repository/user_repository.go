package repository

import (
	"context"
	"time"

	"github.com/vytor/birdguide/internal/models"
)

// UserRepository handles user data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	Upsert(ctx context.Context, u models.UserUpsert) (*models.User, error)
	UpdateGamification(ctx context.Context, upd models.GamificationUpdate) error
	SoftDelete(ctx context.Context, id int64, at time.Time) error
}
