package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func scanProgress(row rowScanner) (models.ProgressRecord, error) {
	var rec models.ProgressRecord
	var counts string
	if err := row.Scan(&rec.UserID, &rec.CardID, &rec.Level, &rec.WrongCount, &counts, &rec.UpdatedAt); err != nil {
		return rec, err
	}
	rec.MiniGameWrongCount = decodeWrongCounts(counts)
	return rec, nil
}

func (r *progressRepository) Get(ctx context.Context, userID string, cardID int64) (*models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%s, card_id=%d", userID, cardID)

	rec, err := scanProgress(r.db.QueryRowContext(ctx, `
SELECT user_id, flashcard_id, level, wrong_count, minigame_wrong_count, updated_at
FROM user_progress
WHERE user_id = ? AND flashcard_id = ?
`, userID, cardID))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("progress not found: card_id=%d", cardID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &rec, nil
}

func (r *progressRepository) ListByUser(ctx context.Context, userID string) ([]models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress: user_id=%s", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, flashcard_id, level, wrong_count, minigame_wrong_count, updated_at
FROM user_progress
WHERE user_id = ?
ORDER BY flashcard_id ASC
`, userID)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.ProgressRecord
	for rows.Next() {
		rec, err := scanProgress(rows)
		if err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		records = append(records, rec)
	}
	log.Debug("found %d progress records", len(records))
	return records, rows.Err()
}

func (r *progressRepository) InsertBatch(ctx context.Context, records []models.ProgressRecord) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("inserting %d progress records", len(records))

	if len(records) == 0 {
		return 0, nil
	}

	inserted := 0
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, rec := range records {
			counts, err := encodeWrongCounts(rec.MiniGameWrongCount)
			if err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx, `
INSERT INTO user_progress (user_id, flashcard_id, level, wrong_count, minigame_wrong_count, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, flashcard_id) DO NOTHING
`, rec.UserID, rec.CardID, rec.Level, rec.WrongCount, counts, timestamp(rec.UpdatedAt))
			if err != nil {
				return err
			}
			n, _ := res.RowsAffected()
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert progress batch: %v", err)
		return 0, err
	}
	log.Debug("inserted %d new progress records", inserted)
	return inserted, nil
}

func (r *progressRepository) DeleteBatch(ctx context.Context, userID string, cardIDs []int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("deleting %d progress records: user_id=%s", len(cardIDs), userID)

	if len(cardIDs) == 0 {
		return 0, nil
	}
	query, args, err := sqlBuilder.Delete("user_progress").
		Where(squirrel.Eq{"user_id": userID, "flashcard_id": cardIDs}).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete progress: %v", err)
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *progressRepository) Upsert(ctx context.Context, rec models.ProgressRecord) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting progress: card_id=%d, level=%d, wrong=%d", rec.CardID, rec.Level, rec.WrongCount)

	if err := upsertProgress(ctx, r.db, rec); err != nil {
		log.Error("failed to upsert progress: %v", err)
		return err
	}
	return nil
}

func upsertProgress(ctx context.Context, ex execer, rec models.ProgressRecord) error {
	counts, err := encodeWrongCounts(rec.MiniGameWrongCount)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, `
INSERT INTO user_progress (user_id, flashcard_id, level, wrong_count, minigame_wrong_count, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, flashcard_id) DO UPDATE SET
    level = excluded.level,
    wrong_count = excluded.wrong_count,
    minigame_wrong_count = excluded.minigame_wrong_count,
    updated_at = excluded.updated_at
`, rec.UserID, rec.CardID, rec.Level, rec.WrongCount, counts, timestamp(rec.UpdatedAt))
	return err
}

// timestamp stores t in UTC, defaulting to now.
func timestamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
