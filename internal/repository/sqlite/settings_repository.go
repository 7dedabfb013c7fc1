package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository implementation
func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, userID string) (*models.Settings, error) {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("getting settings: user_id=%s", userID)

	var s models.Settings
	var lv3, lv4, lv5, lv6 string
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, flashcard_timer, minigame_timer, type_timer, lv3_days, lv4_days, lv5_dates, lv6_dates, updated_at
FROM user_settings
WHERE user_id = ?
`, userID).Scan(&s.UserID, &s.FlashcardTimer, &s.MiniGameTimer, &s.TypeTimer, &lv3, &lv4, &lv5, &lv6, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no settings stored yet")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get settings: %v", err)
		return nil, err
	}
	s.Schedule = models.Schedule{
		Lv3: decodeStrings(lv3),
		Lv4: decodeStrings(lv4),
		Lv5: decodeInts(lv5),
		Lv6: decodeInts(lv6),
	}
	return &s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s models.Settings) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("upserting settings: user_id=%s", s.UserID)

	lv3, err := encodeStrings(s.Schedule.Lv3)
	if err != nil {
		return err
	}
	lv4, err := encodeStrings(s.Schedule.Lv4)
	if err != nil {
		return err
	}
	lv5, err := encodeInts(s.Schedule.Lv5)
	if err != nil {
		return err
	}
	lv6, err := encodeInts(s.Schedule.Lv6)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO user_settings (user_id, flashcard_timer, minigame_timer, type_timer, lv3_days, lv4_days, lv5_dates, lv6_dates, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
    flashcard_timer = excluded.flashcard_timer,
    minigame_timer = excluded.minigame_timer,
    type_timer = excluded.type_timer,
    lv3_days = excluded.lv3_days,
    lv4_days = excluded.lv4_days,
    lv5_dates = excluded.lv5_dates,
    lv6_dates = excluded.lv6_dates,
    updated_at = excluded.updated_at
`, s.UserID, s.FlashcardTimer, s.MiniGameTimer, s.TypeTimer, lv3, lv4, lv5, lv6, timestamp(s.UpdatedAt))
	if err != nil {
		log.Error("failed to upsert settings: %v", err)
	}
	return err
}
