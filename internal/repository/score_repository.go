package repository

import (
	"context"

	"github.com/vytor/nihaocards/internal/models"
)

// ScoreRepository handles mini-game scores and leaderboards
type ScoreRepository interface {
	Get(ctx context.Context, userID string, game models.GameType) (*models.ScoreRecord, error)
	ListByUser(ctx context.Context, userID string) ([]models.ScoreRecord, error)
	Upsert(ctx context.Context, score models.ScoreRecord) error
	// Rankings sums total_score per user, optionally for one game, highest first.
	Rankings(ctx context.Context, game models.GameType, limit int) ([]models.RankingEntry, error)
}
