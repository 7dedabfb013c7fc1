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

type ProgressRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProgressRepository
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProgressRepository(s.db)
	testutil.SeedUser(s.T(), s.db, "u1", "Mali")
	testutil.SeedCards(s.T(), s.db, 1, 2, 3)
}

func (s *ProgressRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProgressRepositorySuite) TestInsertBatchKeepsExistingRecords() {
	ctx := context.Background()

	rec := models.NewProgressRecord("u1", 1)
	rec.Level = 5
	s.Require().NoError(s.repo.Upsert(ctx, rec))

	n, err := s.repo.InsertBatch(ctx, []models.ProgressRecord{
		models.NewProgressRecord("u1", 1),
		models.NewProgressRecord("u1", 2),
	})
	s.Require().NoError(err)
	s.Assert().Equal(1, n)

	got, err := s.repo.Get(ctx, "u1", 1)
	s.Require().NoError(err)
	s.Assert().Equal(5, got.Level)

	all, err := s.repo.ListByUser(ctx, "u1")
	s.Require().NoError(err)
	s.Assert().Len(all, 2)
}

func (s *ProgressRepositorySuite) TestUpsertRoundTripsWrongCounts() {
	ctx := context.Background()

	rec := models.NewProgressRecord("u1", 2)
	rec.WrongCount = 3
	rec.MiniGameWrongCount[models.GameTyping] = 2
	s.Require().NoError(s.repo.Upsert(ctx, rec))

	got, err := s.repo.Get(ctx, "u1", 2)
	s.Require().NoError(err)
	s.Assert().Equal(3, got.WrongCount)
	s.Assert().Equal(2, got.MiniGameWrongCount[models.GameTyping])
	s.Assert().Equal(0, got.MiniGameWrongCount[models.GameThai])
	s.Assert().Len(got.MiniGameWrongCount, len(models.MiniGameTypes))
}

func (s *ProgressRepositorySuite) TestLegacyNumericWrongCountIsSpreadToEveryGame() {
	ctx := context.Background()
	_, err := s.db.Exec(`
INSERT INTO user_progress (user_id, flashcard_id, level, wrong_count, minigame_wrong_count, updated_at)
VALUES ('u1', 3, 2, 0, '2', CURRENT_TIMESTAMP)`)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, "u1", 3)
	s.Require().NoError(err)
	for _, g := range models.MiniGameTypes {
		s.Assert().Equal(2, got.MiniGameWrongCount[g], string(g))
	}
}

func (s *ProgressRepositorySuite) TestMalformedWrongCountFieldsAreIgnored() {
	ctx := context.Background()
	_, err := s.db.Exec(`
INSERT INTO user_progress (user_id, flashcard_id, level, wrong_count, minigame_wrong_count, updated_at)
VALUES ('u1', 3, 1, 0, '{"th": -4, "vol": 1, "chess": 9}', CURRENT_TIMESTAMP)`)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, "u1", 3)
	s.Require().NoError(err)
	s.Assert().Equal(0, got.MiniGameWrongCount[models.GameThai])
	s.Assert().Equal(1, got.MiniGameWrongCount[models.GameVocab])
	s.Assert().NotContains(got.MiniGameWrongCount, models.GameType("chess"))
}

func (s *ProgressRepositorySuite) TestDeleteBatch() {
	ctx := context.Background()
	_, err := s.repo.InsertBatch(ctx, []models.ProgressRecord{
		models.NewProgressRecord("u1", 1),
		models.NewProgressRecord("u1", 2),
		models.NewProgressRecord("u1", 3),
	})
	s.Require().NoError(err)

	n, err := s.repo.DeleteBatch(ctx, "u1", []int64{1, 3, 99})
	s.Require().NoError(err)
	s.Assert().Equal(2, n)

	got, err := s.repo.Get(ctx, "u1", 1)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
