package sqlrepo

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/repository"
)

const speciesColumns = `id, scientific_name, ebird_id, genus, family, order_name, iucn_status, size, summary, range_map_url, created_at`

type speciesRepository struct {
	q sqlx.ExtContext
}

// NewSpeciesRepository creates a new SpeciesRepository implementation
func NewSpeciesRepository(q sqlx.ExtContext) repository.SpeciesRepository {
	return &speciesRepository{q: q}
}

func (r *speciesRepository) List(ctx context.Context) ([]models.Species, error) {
	log := logger.FromContext(ctx).WithPrefix("species_repo")
	log.Debug("listing species")

	var species []models.Species
	err := sqlx.SelectContext(ctx, r.q, &species, `SELECT `+speciesColumns+` FROM species ORDER BY id`)
	if err != nil {
		log.Error("failed to list species: %v", err)
		return nil, err
	}
	log.Debug("found %d species", len(species))
	return species, nil
}

func (r *speciesRepository) Get(ctx context.Context, id int64) (*models.Species, error) {
	log := logger.FromContext(ctx).WithPrefix("species_repo")
	log.Debug("getting species: id=%d", id)

	var s models.Species
	err := sqlx.GetContext(ctx, r.q, &s, r.q.Rebind(`SELECT `+speciesColumns+` FROM species WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("species not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get species: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *speciesRepository) CommonNames(ctx context.Context, speciesIDs []int64, langCode string) ([]models.SpeciesCommonName, error) {
	log := logger.FromContext(ctx).WithPrefix("species_repo")
	log.Debug("fetching common names: species=%d, lang=%s", len(speciesIDs), langCode)

	if len(speciesIDs) == 0 {
		return nil, nil
	}

	query, args, err := builder(r.q).
		Select("id", "species_id", "lang_code", "common_name", "notes", "is_preferred").
		From("species_common_names").
		Where(sq.Eq{"species_id": speciesIDs}).
		Where(sq.Eq{"lang_code": langCode}).
		OrderBy("species_id", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var names []models.SpeciesCommonName
	if err := sqlx.SelectContext(ctx, r.q, &names, query, args...); err != nil {
		log.Error("failed to fetch common names: %v", err)
		return nil, err
	}
	log.Debug("found %d common names", len(names))
	return names, nil
}

func (r *speciesRepository) ListCards(ctx context.Context, limit int) ([]models.SpeciesCard, error) {
	log := logger.FromContext(ctx).WithPrefix("species_repo")
	log.Debug("listing species cards: limit=%d", limit)

	query, args, err := builder(r.q).
		Select("id", "scientific_name", "ebird_id").
		From("species").
		OrderBy("id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	var cards []models.SpeciesCard
	if err := sqlx.SelectContext(ctx, r.q, &cards, query, args...); err != nil {
		log.Error("failed to list species cards: %v", err)
		return nil, err
	}
	return cards, nil
}

func (r *speciesRepository) Insert(ctx context.Context, s models.Species) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("species_repo")
	log.Debug("inserting species: %s", s.ScientificName)

	id, err := insertReturningID(ctx, r.q, `
INSERT INTO species (scientific_name, ebird_id, genus, family, order_name, iucn_status, size, summary, range_map_url)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id
`, s.ScientificName, s.EBirdID, s.Genus, s.Family, s.Order, s.IUCNStatus, s.Size, s.Summary, s.RangeMapURL)
	if err != nil {
		log.Error("failed to insert species: %v", err)
		return 0, err
	}
	log.Debug("species inserted: id=%d", id)
	return id, nil
}

func (r *speciesRepository) InsertCommonName(ctx context.Context, n models.SpeciesCommonName) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("species_repo")
	log.Debug("inserting common name: species_id=%d, lang=%s", n.SpeciesID, n.LangCode)

	id, err := insertReturningID(ctx, r.q, `
INSERT INTO species_common_names (species_id, lang_code, common_name, notes, is_preferred)
VALUES (?, ?, ?, ?, ?)
RETURNING id
`, n.SpeciesID, n.LangCode, n.CommonName, n.Notes, n.IsPreferred)
	if err != nil {
		log.Error("failed to insert common name: %v", err)
		return 0, err
	}
	return id, nil
}
