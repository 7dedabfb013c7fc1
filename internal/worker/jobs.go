package worker

import (
	"context"

	"github.com/vytor/nihaocards/internal/logger"
)

// StickerUnlocker is the part of the rewards client a job needs. Declared
// here so this package does not import rewards.
type StickerUnlocker interface {
	Unlock(ctx context.Context, userID string) (int, error)
}

// UnlockStickersJob runs one sticker unlock check.
type UnlockStickersJob struct {
	Unlocker StickerUnlocker
	UserID   string
}

func (j *UnlockStickersJob) Name() string { return "unlock_stickers" }

func (j *UnlockStickersJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("user_id", j.UserID)

	granted, err := j.Unlocker.Unlock(ctx, j.UserID)
	if err != nil {
		return err
	}
	if granted > 0 {
		log.Info("granted %d stickers", granted)
	}
	return nil
}
