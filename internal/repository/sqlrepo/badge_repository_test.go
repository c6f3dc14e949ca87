package sqlrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/birdguide/internal/db"
	"github.com/vytor/birdguide/internal/models"
	"github.com/vytor/birdguide/internal/repository"
	"github.com/vytor/birdguide/internal/repository/sqlrepo"
	"github.com/vytor/birdguide/internal/testutil"
)

type BadgeRepositorySuite struct {
	suite.Suite
	db     *db.DB
	repo   repository.BadgeRepository
	userID int64
}

func (s *BadgeRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlrepo.NewBadgeRepository(s.db.DB)
	s.userID = testutil.InsertUser(s.T(), s.db, "auth0|b").ID
}

func (s *BadgeRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *BadgeRepositorySuite) TestFirstReviewBadgeIsSeeded() {
	b, err := s.repo.GetByName(context.Background(), models.BadgeFirstReview)
	s.Require().NoError(err)
	s.Require().NotNil(b)
	s.Equal("First Review", b.Title)
	s.True(b.IsActive)
}

func (s *BadgeRepositorySuite) TestGetByNameMissing() {
	b, err := s.repo.GetByName(context.Background(), "century")
	s.NoError(err)
	s.Nil(b)
}

func (s *BadgeRepositorySuite) TestAwardIsIdempotent() {
	ctx := context.Background()
	b, err := s.repo.GetByName(ctx, models.BadgeFirstReview)
	s.Require().NoError(err)

	has, err := s.repo.HasBadge(ctx, s.userID, b.ID)
	s.Require().NoError(err)
	s.False(has)

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	awarded, err := s.repo.Award(ctx, s.userID, b.ID, at)
	s.Require().NoError(err)
	s.True(awarded)

	awarded, err = s.repo.Award(ctx, s.userID, b.ID, at.Add(time.Hour))
	s.Require().NoError(err)
	s.False(awarded)

	has, err = s.repo.HasBadge(ctx, s.userID, b.ID)
	s.Require().NoError(err)
	s.True(has)
	s.Equal(1, testutil.CountRows(s.T(), s.db, "user_badges", "user_id = ?", s.userID))
}

func (s *BadgeRepositorySuite) TestListForUser() {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `INSERT INTO badges (name, title, description, is_active) VALUES ('retired', 'Retired', '', 0), ('streak_7', 'Week Streak', 'Seven days in a row', 1)`)
	s.Require().NoError(err)

	first, err := s.repo.GetByName(ctx, models.BadgeFirstReview)
	s.Require().NoError(err)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	_, err = s.repo.Award(ctx, s.userID, first.ID, at)
	s.Require().NoError(err)

	other := testutil.InsertUser(s.T(), s.db, "auth0|other").ID
	streak, err := s.repo.GetByName(ctx, "streak_7")
	s.Require().NoError(err)
	_, err = s.repo.Award(ctx, other, streak.ID, at)
	s.Require().NoError(err)

	badges, err := s.repo.ListForUser(ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(badges, 2, "inactive badges are hidden")

	s.Equal(models.BadgeFirstReview, badges[0].Name)
	s.Require().NotNil(badges[0].EarnedAt)
	s.True(at.Equal(*badges[0].EarnedAt))

	s.Equal("streak_7", badges[1].Name)
	s.Nil(badges[1].EarnedAt, "another user's badge does not leak")
}

func TestBadgeRepositorySuite(t *testing.T) {
	suite.Run(t, new(BadgeRepositorySuite))
}
