package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/birdguide/internal/models"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Insert(ctx context.Context, review models.FlashcardReview) (int64, error) {
	args := m.Called(ctx, review)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockReviewRepository) CountResults(ctx context.Context, userID int64, speciesIDs []int64, from, to time.Time) (models.ReviewCounts, error) {
	args := m.Called(ctx, userID, speciesIDs, from, to)
	return args.Get(0).(models.ReviewCounts), args.Error(1)
}
