package repository

import (
	"context"

	"github.com/vytor/nihaocards/internal/models"
)

// RewardRepository reads the sticker catalog and a user's unlocks
type RewardRepository interface {
	Books(ctx context.Context) ([]models.StickerBook, error)
	Stickers(ctx context.Context, bookID int64) ([]models.Sticker, error)
	UserStickerIDs(ctx context.Context, userID string) (map[int64]bool, error)
}
