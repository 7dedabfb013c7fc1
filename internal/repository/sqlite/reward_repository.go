package sqlite

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
)

type rewardRepository struct {
	dbx *sqlx.DB
}

// NewRewardRepository creates a new RewardRepository implementation
func NewRewardRepository(db *sql.DB) repository.RewardRepository {
	return &rewardRepository{dbx: sqlx.NewDb(db, "sqlite3")}
}

type bookRow struct {
	ID       int64  `db:"id"`
	Title    string `db:"title"`
	CoverURL string `db:"cover_url"`
}

type stickerRow struct {
	ID         int64  `db:"id"`
	BookID     int64  `db:"book_id"`
	Name       string `db:"name"`
	ImageURL   string `db:"image_url"`
	OrderIndex int    `db:"order_index"`
}

func (r *rewardRepository) Books(ctx context.Context) ([]models.StickerBook, error) {
	log := logger.FromContext(ctx).WithPrefix("reward_repo")
	log.Debug("listing sticker books")

	var rows []bookRow
	if err := r.dbx.SelectContext(ctx, &rows, `SELECT id, title, cover_url FROM sticker_books ORDER BY id ASC`); err != nil {
		log.Error("failed to list sticker books: %v", err)
		return nil, err
	}
	books := make([]models.StickerBook, 0, len(rows))
	for _, b := range rows {
		books = append(books, models.StickerBook{ID: b.ID, Title: b.Title, CoverURL: b.CoverURL})
	}
	return books, nil
}

func (r *rewardRepository) Stickers(ctx context.Context, bookID int64) ([]models.Sticker, error) {
	log := logger.FromContext(ctx).WithPrefix("reward_repo")
	log.Debug("listing stickers: book_id=%d", bookID)

	var rows []stickerRow
	if err := r.dbx.SelectContext(ctx, &rows, `
SELECT id, book_id, name, image_url, order_index
FROM stickers
WHERE book_id = ?
ORDER BY order_index ASC, id ASC
`, bookID); err != nil {
		log.Error("failed to list stickers: %v", err)
		return nil, err
	}
	stickers := make([]models.Sticker, 0, len(rows))
	for _, s := range rows {
		stickers = append(stickers, models.Sticker{
			ID:         s.ID,
			BookID:     s.BookID,
			Name:       s.Name,
			ImageURL:   s.ImageURL,
			OrderIndex: s.OrderIndex,
		})
	}
	return stickers, nil
}

func (r *rewardRepository) UserStickerIDs(ctx context.Context, userID string) (map[int64]bool, error) {
	log := logger.FromContext(ctx).WithPrefix("reward_repo")
	log.Debug("listing unlocked stickers: user_id=%s", userID)

	var ids []int64
	if err := r.dbx.SelectContext(ctx, &ids, `SELECT sticker_id FROM user_stickers WHERE user_id = ?`, userID); err != nil {
		log.Error("failed to list user stickers: %v", err)
		return nil, err
	}
	out := make(map[int64]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
