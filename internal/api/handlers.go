package api

import (
	"context"

	"github.com/vytor/birdguide/internal/auth"
	"github.com/vytor/birdguide/internal/metrics"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/services"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// TokenVerifier turns a bearer token into the caller's identity.
type TokenVerifier interface {
	Verify(token string) (models.Identity, error)
}

type Server struct {
	SpeciesService   services.SpeciesService
	FlashcardService services.FlashcardService
	UserService      services.UserService
	Verifier         TokenVerifier
	DB               Pinger
	Metrics          *metrics.Metrics
}

var _ TokenVerifier = (*auth.Verifier)(nil)
