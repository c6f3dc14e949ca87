package sqlrepo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/birdguide/internal/db"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/repository"
	"github.com/vytor/birdguide/internal/repository/sqlrepo"
	"github.com/vytor/birdguide/internal/testutil"
)

type SpeciesRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.SpeciesRepository
}

func (s *SpeciesRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlrepo.NewSpeciesRepository(s.db.DB)
}

func (s *SpeciesRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SpeciesRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.Species{
		ScientificName: "Erithacus rubecula",
		EBirdID:        "eurrob1",
		Family:         testutil.StrPtr("Muscicapidae"),
		Order:          testutil.StrPtr("Passeriformes"),
	})
	s.Require().NoError(err)
	s.Greater(id, int64(0))

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("Erithacus rubecula", got.ScientificName)
	s.Equal("eurrob1", got.EBirdID)
	s.Require().NotNil(got.Order)
	s.Equal("Passeriformes", *got.Order)
	s.Nil(got.Genus)
	s.False(got.CreatedAt.IsZero())
}

func (s *SpeciesRepositorySuite) TestGetNotFound() {
	got, err := s.repo.Get(context.Background(), 999)
	s.NoError(err)
	s.Nil(got)
}

func (s *SpeciesRepositorySuite) TestListOrderedByID() {
	ctx := context.Background()
	a := testutil.InsertSpecies(s.T(), s.db, "Turdus merula", "eurbla")
	b := testutil.InsertSpecies(s.T(), s.db, "Parus major", "gretit1")

	species, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(species, 2)
	s.Equal(a, species[0].ID)
	s.Equal(b, species[1].ID)
}

func (s *SpeciesRepositorySuite) TestCommonNamesFiltersByLocaleAndIDs() {
	ctx := context.Background()
	blackbird := testutil.InsertSpecies(s.T(), s.db, "Turdus merula", "eurbla")
	tit := testutil.InsertSpecies(s.T(), s.db, "Parus major", "gretit1")
	robin := testutil.InsertSpecies(s.T(), s.db, "Erithacus rubecula", "eurrob1")

	testutil.InsertCommonName(s.T(), s.db, blackbird, "en", "Eurasian Blackbird")
	testutil.InsertCommonName(s.T(), s.db, blackbird, "de", "Amsel")
	testutil.InsertCommonName(s.T(), s.db, tit, "en", "Great Tit")
	testutil.InsertCommonName(s.T(), s.db, robin, "en", "European Robin")

	names, err := s.repo.CommonNames(ctx, []int64{blackbird, tit}, "en")
	s.Require().NoError(err)
	s.Require().Len(names, 2)
	for _, n := range names {
		s.Equal("en", n.LangCode)
		s.NotEqual(robin, n.SpeciesID)
	}

	de, err := s.repo.CommonNames(ctx, []int64{blackbird, tit, robin}, "de")
	s.Require().NoError(err)
	s.Require().Len(de, 1)
	s.Equal("Amsel", de[0].CommonName)
}

func (s *SpeciesRepositorySuite) TestCommonNamesEmptyIDs() {
	names, err := s.repo.CommonNames(context.Background(), nil, "en")
	s.NoError(err)
	s.Empty(names)
}

func (s *SpeciesRepositorySuite) TestListCardsLimit() {
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		testutil.InsertSpecies(s.T(), s.db, "Species "+string(rune('A'+i)), "code"+string(rune('a'+i)))
	}

	cards, err := s.repo.ListCards(ctx, 10)
	s.Require().NoError(err)
	s.Len(cards, 10)
	s.Equal("Species A", cards[0].ScientificName)
	s.Equal("codea", cards[0].EBirdID)
	for i := 1; i < len(cards); i++ {
		s.Less(cards[i-1].ID, cards[i].ID)
	}
}

func TestSpeciesRepositorySuite(t *testing.T) {
	suite.Run(t, new(SpeciesRepositorySuite))
}
