package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
)

type scoreRepository struct {
	db  *sql.DB
	dbx *sqlx.DB
}

// NewScoreRepository creates a new ScoreRepository implementation
func NewScoreRepository(db *sql.DB) repository.ScoreRepository {
	return &scoreRepository{db: db, dbx: sqlx.NewDb(db, "sqlite3")}
}

type scoreRow struct {
	UserID     string `db:"user_id"`
	Game       string `db:"game_type"`
	TotalScore int    `db:"total_score"`
	BestScore  int    `db:"best_score"`
	BestStreak int    `db:"best_streak"`
}

func (s scoreRow) model() models.ScoreRecord {
	return models.ScoreRecord{
		UserID:     s.UserID,
		Game:       models.GameType(s.Game),
		TotalScore: s.TotalScore,
		BestScore:  s.BestScore,
		BestStreak: s.BestStreak,
	}
}

func (r *scoreRepository) Get(ctx context.Context, userID string, game models.GameType) (*models.ScoreRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("getting score: user_id=%s, game=%s", userID, game)

	var row scoreRow
	err := r.dbx.GetContext(ctx, &row, `
SELECT user_id, game_type, total_score, best_score, best_streak
FROM user_scores
WHERE user_id = ? AND game_type = ?
`, userID, string(game))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get score: %v", err)
		return nil, err
	}
	rec := row.model()
	return &rec, nil
}

func (r *scoreRepository) ListByUser(ctx context.Context, userID string) ([]models.ScoreRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("listing scores: user_id=%s", userID)

	var rows []scoreRow
	if err := r.dbx.SelectContext(ctx, &rows, `
SELECT user_id, game_type, total_score, best_score, best_streak
FROM user_scores
WHERE user_id = ?
ORDER BY game_type ASC
`, userID); err != nil {
		log.Error("failed to list scores: %v", err)
		return nil, err
	}

	out := make([]models.ScoreRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}
	return out, nil
}

func (r *scoreRepository) Upsert(ctx context.Context, s models.ScoreRecord) error {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("upserting score: game=%s, total=%d", s.Game, s.TotalScore)

	if err := upsertScore(ctx, r.db, s); err != nil {
		log.Error("failed to upsert score: %v", err)
		return err
	}
	return nil
}

// upsertScore writes total as given and only ever raises the high-water marks.
func upsertScore(ctx context.Context, ex execer, s models.ScoreRecord) error {
	_, err := ex.ExecContext(ctx, `
INSERT INTO user_scores (user_id, game_type, total_score, best_score, best_streak, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, game_type) DO UPDATE SET
    total_score = excluded.total_score,
    best_score = MAX(user_scores.best_score, excluded.best_score),
    best_streak = MAX(user_scores.best_streak, excluded.best_streak),
    updated_at = excluded.updated_at
`, s.UserID, string(s.Game), max(0, s.TotalScore), s.BestScore, s.BestStreak, timestamp(s.UpdatedAt))
	return err
}

type rankingRow struct {
	UserID      string `db:"user_id"`
	DisplayName string `db:"display_name"`
	TotalScore  int    `db:"total"`
}

func (r *scoreRepository) Rankings(ctx context.Context, game models.GameType, limit int) ([]models.RankingEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("building rankings: game=%q, limit=%d", game, limit)

	q := sqlBuilder.
		Select("s.user_id", "u.display_name", "SUM(s.total_score) AS total").
		From("user_scores s").
		Join("users u ON u.id = s.user_id").
		GroupBy("s.user_id", "u.display_name").
		OrderBy("total DESC", "u.display_name ASC", "s.user_id ASC")
	if game != "" {
		q = q.Where(squirrel.Eq{"s.game_type": string(game)})
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var rows []rankingRow
	if err := r.dbx.SelectContext(ctx, &rows, query, args...); err != nil {
		log.Error("failed to query rankings: %v", err)
		return nil, err
	}

	entries := make([]models.RankingEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, models.RankingEntry{
			Rank:        i + 1,
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			TotalScore:  row.TotalScore,
		})
	}
	log.Debug("ranked %d users", len(entries))
	return entries, nil
}
