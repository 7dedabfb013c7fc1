package repository

import (
	"context"

	"github.com/vytor/nihaocards/internal/models"
)

// PlayedRepository stores the played ids of each (user, game, mode) lap.
type PlayedRepository interface {
	PlayedIDs(ctx context.Context, userID string, game models.GameType, mode string) ([]int64, error)
	SetPlayedIDs(ctx context.Context, userID string, game models.GameType, mode string, ids []int64) error
	ClearPlayedIDs(ctx context.Context, userID string, game models.GameType, mode string) error
}
