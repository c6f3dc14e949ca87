package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/birdguide/internal/models"
)

// MockBadgeRepository is a mock implementation of repository.BadgeRepository
type MockBadgeRepository struct {
	mock.Mock
}

func (m *MockBadgeRepository) GetByName(ctx context.Context, name string) (*models.Badge, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Badge), args.Error(1)
}

func (m *MockBadgeRepository) HasBadge(ctx context.Context, userID, badgeID int64) (bool, error) {
	args := m.Called(ctx, userID, badgeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBadgeRepository) Award(ctx context.Context, userID, badgeID int64, at time.Time) (bool, error) {
	args := m.Called(ctx, userID, badgeID, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockBadgeRepository) ListForUser(ctx context.Context, userID int64) ([]models.BadgeWithEarned, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BadgeWithEarned), args.Error(1)
}
