package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
)

type wrongWordRepository struct {
	db *sql.DB
}

// NewWrongWordRepository creates a new WrongWordRepository implementation
func NewWrongWordRepository(db *sql.DB) repository.WrongWordRepository {
	return &wrongWordRepository{db: db}
}

func (r *wrongWordRepository) Insert(ctx context.Context, w models.WrongWord) error {
	log := logger.FromContext(ctx).WithPrefix("wrong_word_repo")
	log.Debug("logging wrong word: card_id=%d, game=%s", w.CardID, w.Game)

	if err := insertWrongWord(ctx, r.db, w); err != nil {
		log.Error("failed to insert wrong word: %v", err)
		return err
	}
	return nil
}

func insertWrongWord(ctx context.Context, ex execer, w models.WrongWord) error {
	_, err := ex.ExecContext(ctx, `
INSERT INTO user_wrong_words (id, user_id, flashcard_id, game_type, created_at)
VALUES (?, ?, ?, ?, ?)
`, w.ID, w.UserID, w.CardID, string(w.Game), timestamp(w.CreatedAt))
	return err
}

func (r *wrongWordRepository) ListByUser(ctx context.Context, userID string) ([]models.WrongWord, error) {
	log := logger.FromContext(ctx).WithPrefix("wrong_word_repo")
	log.Debug("listing wrong words: user_id=%s", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, flashcard_id, game_type, created_at
FROM user_wrong_words
WHERE user_id = ?
ORDER BY created_at DESC, rowid DESC
`, userID)
	if err != nil {
		log.Error("failed to list wrong words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var words []models.WrongWord
	for rows.Next() {
		var w models.WrongWord
		var game string
		if err := rows.Scan(&w.ID, &w.UserID, &w.CardID, &game, &w.CreatedAt); err != nil {
			log.Error("failed to scan wrong word row: %v", err)
			return nil, err
		}
		w.Game = models.GameType(game)
		words = append(words, w)
	}
	log.Debug("found %d wrong words", len(words))
	return words, rows.Err()
}

func (r *wrongWordRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("wrong_word_repo")
	log.Debug("deleting wrong word: id=%s", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM user_wrong_words WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		log.Error("failed to delete wrong word: %v", err)
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
