package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/birdguide/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, userID, speciesID int64) (*models.Progress, error) {
	args := m.Called(ctx, userID, speciesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Progress), args.Error(1)
}

func (m *MockProgressRepository) Create(ctx context.Context, p models.Progress) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgressRepository) Update(ctx context.Context, p models.Progress) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgressRepository) Totals(ctx context.Context, userID int64) (models.ProgressTotals, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.ProgressTotals), args.Error(1)
}
