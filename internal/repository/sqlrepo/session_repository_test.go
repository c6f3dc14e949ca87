package sqlrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/birdguide/internal/db"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/repository"
	"github.com/vytor/birdguide/internal/repository/sqlrepo"
	"github.com/vytor/birdguide/internal/testutil"
)

type SessionRepositorySuite struct {
	suite.Suite
	db     *db.DB
	repo   repository.SessionRepository
	userID int64
}

func (s *SessionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlrepo.NewSessionRepository(s.db.DB)
	s.userID = testutil.InsertUser(s.T(), s.db, "auth0|s").ID
}

func (s *SessionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SessionRepositorySuite) insert(startedAt time.Time) models.FlashcardSession {
	sess := models.FlashcardSession{
		ID:         uuid.NewString(),
		UserID:     s.userID,
		SpeciesIDs: []int64{3, 1, 2},
		StartedAt:  startedAt,
		TotalCards: 3,
	}
	s.Require().NoError(s.repo.Insert(context.Background(), sess))
	return sess
}

func (s *SessionRepositorySuite) TestInsertAndGet() {
	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	sess := s.insert(started)

	got, err := s.repo.Get(context.Background(), sess.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(sess.ID, got.ID)
	s.Equal(s.userID, got.UserID)
	s.Equal([]int64{3, 1, 2}, got.SpeciesIDs)
	s.True(started.Equal(got.StartedAt))
	s.Equal(3, got.TotalCards)
	s.False(got.Completed())
}

func (s *SessionRepositorySuite) TestGetMissing() {
	got, err := s.repo.Get(context.Background(), uuid.NewString())
	s.NoError(err)
	s.Nil(got)
}

func (s *SessionRepositorySuite) TestCompleteOnlyOnce() {
	ctx := context.Background()
	sess := s.insert(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))

	done := time.Date(2024, 5, 1, 10, 5, 0, 0, time.UTC)
	sess.CompletedAt = &done
	sess.CorrectCount = 2
	sess.IncorrectCount = 1
	sess.Accuracy = 2.0 / 3.0
	sess.DurationSeconds = 300

	ok, err := s.repo.Complete(ctx, sess)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.repo.Complete(ctx, sess)
	s.Require().NoError(err)
	s.False(ok)

	got, err := s.repo.Get(ctx, sess.ID)
	s.Require().NoError(err)
	s.True(got.Completed())
	s.Equal(2, got.CorrectCount)
	s.Equal(300, got.DurationSeconds)
	s.InDelta(2.0/3.0, got.Accuracy, 1e-9)
}

func (s *SessionRepositorySuite) TestListOpenBefore() {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	old := s.insert(base.Add(-8 * time.Hour))
	s.insert(base.Add(-time.Hour))

	closed := s.insert(base.Add(-9 * time.Hour))
	done := base
	closed.CompletedAt = &done
	_, err := s.repo.Complete(ctx, closed)
	s.Require().NoError(err)

	open, err := s.repo.ListOpenBefore(ctx, base.Add(-6*time.Hour))
	s.Require().NoError(err)
	s.Require().Len(open, 1)
	s.Equal(old.ID, open[0].ID)
	s.Equal([]int64{3, 1, 2}, open[0].SpeciesIDs)
}

func TestSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(SessionRepositorySuite))
}
