package repository

import (
	"context"

	"github.com/vytor/nihaocards/internal/models"
)

// SettingsRepository handles per-user timers and schedules
type SettingsRepository interface {
	Get(ctx context.Context, userID string) (*models.Settings, error)
	Upsert(ctx context.Context, s models.Settings) error
}
