package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
)

type playedRepository struct {
	db *sql.DB
}

// NewPlayedRepository creates a new PlayedRepository implementation
func NewPlayedRepository(db *sql.DB) repository.PlayedRepository {
	return &playedRepository{db: db}
}

func (r *playedRepository) PlayedIDs(ctx context.Context, userID string, game models.GameType, mode string) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("played_repo")
	log.Debug("loading played ids: game=%s, mode=%s", game, mode)

	var raw string
	err := r.db.QueryRowContext(ctx, `
SELECT played_ids FROM user_minigame_played
WHERE user_id = ? AND game_type = ? AND mode = ?
`, userID, string(game), mode).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load played ids: %v", err)
		return nil, err
	}
	return decodeIDs(raw), nil
}

func (r *playedRepository) SetPlayedIDs(ctx context.Context, userID string, game models.GameType, mode string, ids []int64) error {
	log := logger.FromContext(ctx).WithPrefix("played_repo")
	log.Debug("saving %d played ids: game=%s, mode=%s", len(ids), game, mode)

	err := savePlayed(ctx, r.db, models.PlayedSet{UserID: userID, Game: game, Mode: mode, IDs: ids})
	if err != nil {
		log.Error("failed to save played ids: %v", err)
	}
	return err
}

func (r *playedRepository) ClearPlayedIDs(ctx context.Context, userID string, game models.GameType, mode string) error {
	return r.SetPlayedIDs(ctx, userID, game, mode, nil)
}

// savePlayed upserts the set, or deletes the row when it is empty.
func savePlayed(ctx context.Context, ex execer, p models.PlayedSet) error {
	if len(p.IDs) == 0 {
		_, err := ex.ExecContext(ctx, `
DELETE FROM user_minigame_played
WHERE user_id = ? AND game_type = ? AND mode = ?
`, p.UserID, string(p.Game), p.Mode)
		return err
	}

	raw, err := encodeIDs(p.IDs)
	if err != nil {
		return err
	}
	updated := p.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err = ex.ExecContext(ctx, `
INSERT INTO user_minigame_played (user_id, game_type, mode, played_ids, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(user_id, game_type, mode) DO UPDATE SET
    played_ids = excluded.played_ids,
    updated_at = excluded.updated_at
`, p.UserID, string(p.Game), p.Mode, raw, updated.UTC())
	return err
}
