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

type PlayedRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.PlayedRepository
}

func (s *PlayedRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewPlayedRepository(s.db)
	testutil.SeedUser(s.T(), s.db, "u1", "Mali")
}

func (s *PlayedRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *PlayedRepositorySuite) TestSetAndClear() {
	ctx := context.Background()
	s.Require().NoError(s.repo.SetPlayedIDs(ctx, "u1", models.GameThai, "normal", []int64{3, 1}))
	s.Require().NoError(s.repo.SetPlayedIDs(ctx, "u1", models.GameThai, "review", []int64{2}))

	ids, err := s.repo.PlayedIDs(ctx, "u1", models.GameThai, "normal")
	s.Require().NoError(err)
	s.Assert().Equal([]int64{3, 1}, ids)

	s.Require().NoError(s.repo.ClearPlayedIDs(ctx, "u1", models.GameThai, "normal"))
	ids, err = s.repo.PlayedIDs(ctx, "u1", models.GameThai, "normal")
	s.Require().NoError(err)
	s.Assert().Empty(ids)

	review, err := s.repo.PlayedIDs(ctx, "u1", models.GameThai, "review")
	s.Require().NoError(err)
	s.Assert().Equal([]int64{2}, review, "modes are tracked separately")
}

func (s *PlayedRepositorySuite) TestNonNumericIDsAreDropped() {
	_, err := s.db.Exec(`
INSERT INTO user_minigame_played (user_id, game_type, mode, played_ids, updated_at)
VALUES ('u1', 'vol', 'normal', '[1, "2", "x", 3.5, null, 4]', CURRENT_TIMESTAMP)`)
	s.Require().NoError(err)

	ids, err := s.repo.PlayedIDs(context.Background(), "u1", models.GameVocab, "normal")
	s.Require().NoError(err)
	s.Assert().Equal([]int64{1, 2, 4}, ids)
}

func TestPlayedRepositorySuite(t *testing.T) {
	suite.Run(t, new(PlayedRepositorySuite))
}
