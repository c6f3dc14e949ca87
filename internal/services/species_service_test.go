package services_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/birdguide/internal/errors"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/services"
	"github.com/vytor/birdguide/internal/testutil/mocks"
)

func names(list []models.SpeciesWithCommonName) []string {
	out := make([]string, len(list))
	for i, s := range list {
		if s.CommonName != nil {
			out[i] = *s.CommonName
		}
	}
	return out
}

func TestListSpecies_FiltersLocaleAndSorts(t *testing.T) {
	repo := new(mocks.MockSpeciesRepository)
	species := []models.Species{
		{ID: 1, ScientificName: "Phylloscopus collybita"},
		{ID: 2, ScientificName: "Turdus merula"},
		{ID: 3, ScientificName: "Thymallus thymallus"},
		{ID: 4, ScientificName: "Nomen nudum"},
	}
	repo.On("List", mock.Anything).Return(species, nil)
	repo.On("CommonNames", mock.Anything, []int64{1, 2, 3, 4}, "de").Return([]models.SpeciesCommonName{
		{SpeciesID: 1, LangCode: "de", CommonName: "Zilpzalp"},
		{SpeciesID: 2, LangCode: "de", CommonName: "Amsel"},
		{SpeciesID: 2, LangCode: "de", CommonName: "Schwarzdrossel"},
		{SpeciesID: 3, LangCode: "de", CommonName: "Äsche"},
	}, nil)

	svc := services.NewSpeciesService(repo, "en", 0)
	list, err := svc.ListSpecies(context.Background(), "de")
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Amsel", "Äsche", "Zilpzalp"}, names(list))
	assert.Nil(t, list[0].CommonName, "species without a name sort first with a null name")
	assert.Equal(t, int64(4), list[0].ID)
	assert.Equal(t, int64(2), list[1].ID, "first name in storage order wins")
	repo.AssertExpectations(t)
}

func TestListSpecies_CaseInsensitiveCollation(t *testing.T) {
	repo := new(mocks.MockSpeciesRepository)
	repo.On("List", mock.Anything).Return([]models.Species{{ID: 1}, {ID: 2}}, nil)
	repo.On("CommonNames", mock.Anything, []int64{1, 2}, "en").Return([]models.SpeciesCommonName{
		{SpeciesID: 1, CommonName: "Emu"},
		{SpeciesID: 2, CommonName: "eider"},
	}, nil)

	list, err := services.NewSpeciesService(repo, "en", 0).ListSpecies(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"eider", "Emu"}, names(list))
}

func TestListSpecies_CanonicalizesLocale(t *testing.T) {
	repo := new(mocks.MockSpeciesRepository)
	repo.On("List", mock.Anything).Return([]models.Species{{ID: 1}}, nil)
	repo.On("CommonNames", mock.Anything, []int64{1}, "en-US").Return([]models.SpeciesCommonName{
		{SpeciesID: 1, LangCode: "en-US", CommonName: "American Robin"},
	}, nil)

	list, err := services.NewSpeciesService(repo, "en", 0).ListSpecies(context.Background(), "en-us")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "American Robin", *list[0].CommonName)
	repo.AssertExpectations(t)
}

func TestListSpecies_InvalidLocale(t *testing.T) {
	repo := new(mocks.MockSpeciesRepository)

	_, err := services.NewSpeciesService(repo, "en", 0).ListSpecies(context.Background(), "not a tag!")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	repo.AssertNotCalled(t, "List", mock.Anything)
}

func TestListSpecies_Cached(t *testing.T) {
	repo := new(mocks.MockSpeciesRepository)
	repo.On("List", mock.Anything).Return([]models.Species{{ID: 1}}, nil).Once()
	repo.On("CommonNames", mock.Anything, []int64{1}, "en").Return([]models.SpeciesCommonName{}, nil).Once()

	svc := services.NewSpeciesService(repo, "en", time.Minute)
	first, err := svc.ListSpecies(context.Background(), "en")
	require.NoError(t, err)
	second, err := svc.ListSpecies(context.Background(), "en")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertExpectations(t)
}

func TestListSpecies_StorageError(t *testing.T) {
	repo := new(mocks.MockSpeciesRepository)
	repo.On("List", mock.Anything).Return(nil, stderrors.New("disk I/O error"))

	_, err := services.NewSpeciesService(repo, "en", 0).ListSpecies(context.Background(), "en")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
	assert.Contains(t, err.Error(), "disk I/O error")
}

func TestGetSpecies(t *testing.T) {
	repo := new(mocks.MockSpeciesRepository)
	repo.On("Get", mock.Anything, int64(7)).Return(&models.Species{ID: 7, ScientificName: "Pica pica"}, nil)
	repo.On("CommonNames", mock.Anything, []int64{7}, "fr").Return([]models.SpeciesCommonName{
		{SpeciesID: 7, LangCode: "fr", CommonName: "Pie bavarde"},
	}, nil)

	got, err := services.NewSpeciesService(repo, "en", 0).GetSpecies(context.Background(), 7, "fr")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Pica pica", got.ScientificName)
	assert.Equal(t, "Pie bavarde", *got.CommonName)
}

func TestGetSpecies_NotFoundIsNil(t *testing.T) {
	repo := new(mocks.MockSpeciesRepository)
	repo.On("Get", mock.Anything, int64(99)).Return(nil, nil)

	got, err := services.NewSpeciesService(repo, "en", 0).GetSpecies(context.Background(), 99, "en")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetSpecies_InvalidIDRejectedBeforeDataAccess(t *testing.T) {
	repo := new(mocks.MockSpeciesRepository)

	for _, id := range []int64{0, -3} {
		_, err := services.NewSpeciesService(repo, "en", 0).GetSpecies(context.Background(), id, "en")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
		assert.Contains(t, err.Error(), "invalid species id")
	}
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
