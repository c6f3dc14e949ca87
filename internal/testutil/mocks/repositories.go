package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/birdguide/internal/repository"
)

// Repos bundles one mock per repository.
type Repos struct {
	Species  *MockSpeciesRepository
	Users    *MockUserRepository
	Reviews  *MockReviewRepository
	Progress *MockProgressRepository
	Badges   *MockBadgeRepository
	Events   *MockEventRepository
	Sessions *MockSessionRepository
}

// NewRepos creates a fresh set of repository mocks.
func NewRepos() *Repos {
	return &Repos{
		Species:  new(MockSpeciesRepository),
		Users:    new(MockUserRepository),
		Reviews:  new(MockReviewRepository),
		Progress: new(MockProgressRepository),
		Badges:   new(MockBadgeRepository),
		Events:   new(MockEventRepository),
		Sessions: new(MockSessionRepository),
	}
}

// Repositories exposes the mocks as repository.Repositories.
func (r *Repos) Repositories() repository.Repositories {
	return repository.Repositories{
		Species:  r.Species,
		Users:    r.Users,
		Reviews:  r.Reviews,
		Progress: r.Progress,
		Badges:   r.Badges,
		Events:   r.Events,
		Sessions: r.Sessions,
	}
}

// WithinTx implements repository.TxManager by calling fn with the mocks.
// Commit and rollback are not modelled.
func (r *Repos) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return fn(ctx, r.Repositories())
}

// AssertExpectations checks every mock in the set.
func (r *Repos) AssertExpectations(t mock.TestingT) {
	r.Species.AssertExpectations(t)
	r.Users.AssertExpectations(t)
	r.Reviews.AssertExpectations(t)
	r.Progress.AssertExpectations(t)
	r.Badges.AssertExpectations(t)
	r.Events.AssertExpectations(t)
	r.Sessions.AssertExpectations(t)
}
