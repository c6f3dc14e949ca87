package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/birdguide/internal/models"
)

// MockSpeciesRepository is a mock implementation of repository.SpeciesRepository
type MockSpeciesRepository struct {
	mock.Mock
}

func (m *MockSpeciesRepository) List(ctx context.Context) ([]models.Species, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Species), args.Error(1)
}

func (m *MockSpeciesRepository) Get(ctx context.Context, id int64) (*models.Species, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Species), args.Error(1)
}

func (m *MockSpeciesRepository) CommonNames(ctx context.Context, speciesIDs []int64, langCode string) ([]models.SpeciesCommonName, error) {
	args := m.Called(ctx, speciesIDs, langCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SpeciesCommonName), args.Error(1)
}

func (m *MockSpeciesRepository) ListCards(ctx context.Context, limit int) ([]models.SpeciesCard, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SpeciesCard), args.Error(1)
}

func (m *MockSpeciesRepository) Insert(ctx context.Context, species models.Species) (int64, error) {
	args := m.Called(ctx, species)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSpeciesRepository) InsertCommonName(ctx context.Context, name models.SpeciesCommonName) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}
