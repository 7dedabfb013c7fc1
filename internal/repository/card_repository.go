package repository

import (
	"context"

	"github.com/vytor/nihaocards/internal/models"
)

// CardRepository handles catalog data access
type CardRepository interface {
	List(ctx context.Context) ([]models.Card, error)
	Get(ctx context.Context, id int64) (*models.Card, error)
	GetMany(ctx context.Context, ids []int64) (map[int64]models.Card, error)
	FirstIDs(ctx context.Context, n int) ([]int64, error)
	ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
	// Upsert inserts or replaces the card by id and reports whether it was new.
	Upsert(ctx context.Context, card models.Card) (bool, error)
}
