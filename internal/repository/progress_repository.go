package repository

import (
	"context"

	"github.com/vytor/nihaocards/internal/models"
)

// ProgressRepository handles per-user card progress, which doubles as the
// selection set.
type ProgressRepository interface {
	Get(ctx context.Context, userID string, cardID int64) (*models.ProgressRecord, error)
	ListByUser(ctx context.Context, userID string) ([]models.ProgressRecord, error)
	// InsertBatch creates fresh records and leaves existing ones untouched.
	InsertBatch(ctx context.Context, records []models.ProgressRecord) (int, error)
	DeleteBatch(ctx context.Context, userID string, cardIDs []int64) (int, error)
	Upsert(ctx context.Context, record models.ProgressRecord) error
}
