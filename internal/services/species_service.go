package services

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/vytor/birdguide/internal/errors"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/repository"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SpeciesService handles the species directory
type SpeciesService interface {
	ListSpecies(ctx context.Context, locale string) ([]models.SpeciesWithCommonName, error)
	GetSpecies(ctx context.Context, id int64, locale string) (*models.SpeciesWithCommonName, error)
}

type speciesService struct {
	speciesRepo   repository.SpeciesRepository
	defaultLocale string
	cache         *cache.Cache
}

// NewSpeciesService creates a new SpeciesService. List results are cached per
// locale for cacheTTL; a zero TTL disables caching.
func NewSpeciesService(speciesRepo repository.SpeciesRepository, defaultLocale string, cacheTTL time.Duration) SpeciesService {
	s := &speciesService{speciesRepo: speciesRepo, defaultLocale: defaultLocale}
	if cacheTTL > 0 {
		s.cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	return s
}

// ParseLocale canonicalizes a BCP 47 tag ("en-us" becomes "en-US"). An empty
// value falls back to def.
func ParseLocale(raw, def string) (language.Tag, error) {
	if raw == "" {
		raw = def
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, errors.NewValidationError("lang", "invalid language tag "+raw)
	}
	return tag, nil
}

func (s *speciesService) ListSpecies(ctx context.Context, locale string) ([]models.SpeciesWithCommonName, error) {
	log := logger.FromContext(ctx)

	tag, err := ParseLocale(locale, s.defaultLocale)
	if err != nil {
		return nil, err
	}
	lang := tag.String()
	log.Debug("listing species: lang=%s", lang)

	if s.cache != nil {
		if cached, ok := s.cache.Get(lang); ok {
			log.Debug("species list served from cache: lang=%s", lang)
			return slices.Clone(cached.([]models.SpeciesWithCommonName)), nil
		}
	}

	species, err := s.speciesRepo.List(ctx)
	if err != nil {
		log.Error("failed to list species: %v", err)
		return nil, errors.NewInternalError(err)
	}

	ids := make([]int64, len(species))
	for i, sp := range species {
		ids[i] = sp.ID
	}
	names, err := s.speciesRepo.CommonNames(ctx, ids, lang)
	if err != nil {
		log.Error("failed to load common names: %v", err)
		return nil, errors.NewInternalError(err)
	}

	out := attachCommonNames(species, names)
	sortByCommonName(out, tag)

	if s.cache != nil {
		s.cache.SetDefault(lang, slices.Clone(out))
	}
	log.Debug("listed %d species, %d with a %s name", len(out), len(names), lang)
	return out, nil
}

func (s *speciesService) GetSpecies(ctx context.Context, id int64, locale string) (*models.SpeciesWithCommonName, error) {
	log := logger.FromContext(ctx)

	if id <= 0 {
		return nil, errors.NewValidationError("id", "invalid species id")
	}
	tag, err := ParseLocale(locale, s.defaultLocale)
	if err != nil {
		return nil, err
	}
	lang := tag.String()
	log.Debug("getting species: id=%d, lang=%s", id, lang)

	sp, err := s.speciesRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get species: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if sp == nil {
		return nil, nil
	}

	names, err := s.speciesRepo.CommonNames(ctx, []int64{id}, lang)
	if err != nil {
		log.Error("failed to load common names: %v", err)
		return nil, errors.NewInternalError(err)
	}

	out := attachCommonNames([]models.Species{*sp}, names)
	return &out[0], nil
}

// attachCommonNames pairs each species with the first name listed for it.
func attachCommonNames(species []models.Species, names []models.SpeciesCommonName) []models.SpeciesWithCommonName {
	first := make(map[int64]string, len(names))
	for _, n := range names {
		if _, ok := first[n.SpeciesID]; !ok {
			first[n.SpeciesID] = n.CommonName
		}
	}

	out := make([]models.SpeciesWithCommonName, len(species))
	for i, sp := range species {
		out[i] = models.SpeciesWithCommonName{Species: sp}
		if name, ok := first[sp.ID]; ok {
			out[i].CommonName = &name
		}
	}
	return out
}

// sortByCommonName orders by common name using tag's collation. Missing names
// compare as the empty string.
func sortByCommonName(list []models.SpeciesWithCommonName, tag language.Tag) {
	c := collate.New(tag)
	key := func(s models.SpeciesWithCommonName) string {
		if s.CommonName == nil {
			return ""
		}
		return *s.CommonName
	}
	sort.SliceStable(list, func(i, j int) bool {
		return c.CompareString(key(list[i]), key(list[j])) < 0
	})
}
