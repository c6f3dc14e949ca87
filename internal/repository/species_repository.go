package repository

import (
	"context"

	"github.com/vytor/birdguide/internal/models"
)

// SpeciesRepository handles species and common name data access
type SpeciesRepository interface {
	List(ctx context.Context) ([]models.Species, error)
	Get(ctx context.Context, id int64) (*models.Species, error)
	CommonNames(ctx context.Context, speciesIDs []int64, langCode string) ([]models.SpeciesCommonName, error)
	ListCards(ctx context.Context, limit int) ([]models.SpeciesCard, error)
	Insert(ctx context.Context, species models.Species) (int64, error)
	InsertCommonName(ctx context.Context, name models.SpeciesCommonName) (int64, error)
}
