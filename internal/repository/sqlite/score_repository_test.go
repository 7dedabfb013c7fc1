package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
	"github.com/vytor/nihaocards/internal/repository/sqlite"
	"github.com/vytor/nihaocards/internal/testutil"
)

type ScoreRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ScoreRepository
}

func (s *ScoreRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewScoreRepository(s.db)
	testutil.SeedUser(s.T(), s.db, "u1", "Mali")
	testutil.SeedUser(s.T(), s.db, "u2", "Nok")
	testutil.SeedUser(s.T(), s.db, "u3", "Ploy")
}

func (s *ScoreRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ScoreRepositorySuite) TestUpsertNeverLowersBests() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Upsert(ctx, models.ScoreRecord{UserID: "u1", Game: models.GameThai, TotalScore: 12, BestScore: 12, BestStreak: 7}))
	s.Require().NoError(s.repo.Upsert(ctx, models.ScoreRecord{UserID: "u1", Game: models.GameThai, TotalScore: 9, BestScore: 9, BestStreak: 0}))

	got, err := s.repo.Get(ctx, "u1", models.GameThai)
	s.Require().NoError(err)
	s.Assert().Equal(9, got.TotalScore)
	s.Assert().Equal(12, got.BestScore)
	s.Assert().Equal(7, got.BestStreak)
}

func (s *ScoreRepositorySuite) TestGetMissing() {
	got, err := s.repo.Get(context.Background(), "u1", models.GameVocab)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *ScoreRepositorySuite) TestRankings() {
	ctx := context.Background()
	for _, rec := range []models.ScoreRecord{
		{UserID: "u1", Game: models.GameThai, TotalScore: 10},
		{UserID: "u1", Game: models.GamePinyin, TotalScore: 10},
		{UserID: "u2", Game: models.GameThai, TotalScore: 15},
		{UserID: "u3", Game: models.GameTyping, TotalScore: 1},
	} {
		s.Require().NoError(s.repo.Upsert(ctx, rec))
	}

	overall, err := s.repo.Rankings(ctx, "", 100)
	s.Require().NoError(err)
	s.Require().Len(overall, 3)
	s.Assert().Equal("u1", overall[0].UserID)
	s.Assert().Equal(20, overall[0].TotalScore)
	s.Assert().Equal(1, overall[0].Rank)
	s.Assert().Equal("Nok", overall[1].DisplayName)
	s.Assert().Equal(3, overall[2].Rank)

	thai, err := s.repo.Rankings(ctx, models.GameThai, 1)
	s.Require().NoError(err)
	s.Require().Len(thai, 1)
	s.Assert().Equal("u2", thai[0].UserID)

	list, err := s.repo.ListByUser(ctx, "u1")
	s.Require().NoError(err)
	s.Assert().Len(list, 2)
}

func TestScoreRepositorySuite(t *testing.T) {
	suite.Run(t, new(ScoreRepositorySuite))
}
