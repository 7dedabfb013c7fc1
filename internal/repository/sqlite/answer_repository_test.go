package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
	"github.com/vytor/nihaocards/internal/repository/sqlite"
	"github.com/vytor/nihaocards/internal/testutil"
)

type AnswerRepositorySuite struct {
	suite.Suite
	db       *sql.DB
	repo     repository.AnswerRepository
	progress repository.ProgressRepository
	played   repository.PlayedRepository
	scores   repository.ScoreRepository
	wrong    repository.WrongWordRepository
}

func (s *AnswerRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewAnswerRepository(s.db)
	s.progress = sqlite.NewProgressRepository(s.db)
	s.played = sqlite.NewPlayedRepository(s.db)
	s.scores = sqlite.NewScoreRepository(s.db)
	s.wrong = sqlite.NewWrongWordRepository(s.db)
	testutil.SeedUser(s.T(), s.db, "u1", "Mali")
	testutil.SeedCards(s.T(), s.db, 1, 2)
}

func (s *AnswerRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *AnswerRepositorySuite) TestCommitWritesEverything() {
	ctx := context.Background()
	rec := models.NewProgressRecord("u1", 1)
	rec.MiniGameWrongCount[models.GameThai] = 1

	err := s.repo.Commit(ctx, models.AnswerCommit{
		Progress:  &rec,
		Played:    &models.PlayedSet{UserID: "u1", Game: models.GameThai, Mode: "normal", IDs: []int64{1}},
		Score:     &models.ScoreRecord{UserID: "u1", Game: models.GameThai, TotalScore: 0, BestScore: 4, BestStreak: 4},
		WrongWord: &models.WrongWord{ID: uuid.NewString(), UserID: "u1", CardID: 1, Game: models.GameThai, CreatedAt: time.Now()},
	})
	s.Require().NoError(err)

	got, err := s.progress.Get(ctx, "u1", 1)
	s.Require().NoError(err)
	s.Assert().Equal(1, got.MiniGameWrongCount[models.GameThai])

	ids, err := s.played.PlayedIDs(ctx, "u1", models.GameThai, "normal")
	s.Require().NoError(err)
	s.Assert().Equal([]int64{1}, ids)

	score, err := s.scores.Get(ctx, "u1", models.GameThai)
	s.Require().NoError(err)
	s.Assert().Equal(4, score.BestScore)

	words, err := s.wrong.ListByUser(ctx, "u1")
	s.Require().NoError(err)
	s.Assert().Len(words, 1)
}

func (s *AnswerRepositorySuite) TestCommitIsAtomic() {
	ctx := context.Background()
	rec := models.NewProgressRecord("u1", 2)
	rec.Level = 4

	// Card 99 does not exist, so the wrong word insert violates its foreign key.
	err := s.repo.Commit(ctx, models.AnswerCommit{
		Progress:  &rec,
		WrongWord: &models.WrongWord{ID: uuid.NewString(), UserID: "u1", CardID: 99, Game: models.GameFlashcard},
	})
	s.Require().Error(err)

	got, err := s.progress.Get(ctx, "u1", 2)
	s.Require().NoError(err)
	s.Assert().Nil(got, "progress write is rolled back with the failed insert")
}

func TestAnswerRepositorySuite(t *testing.T) {
	suite.Run(t, new(AnswerRepositorySuite))
}
