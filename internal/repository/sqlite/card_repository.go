package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
)

var cardColumns = []string{
	"id", "front_image_url", "back_image_url", "hanzi", "pinyin", "translation",
	"example", "example_translation", "test_sentence", "created_at",
}

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (models.Card, error) {
	var c models.Card
	err := row.Scan(&c.ID, &c.FrontImageURL, &c.BackImageURL, &c.Hanzi, &c.Pinyin, &c.Translation,
		&c.Example, &c.ExampleTranslation, &c.TestSentence, &c.CreatedAt)
	return c, err
}

func (r *cardRepository) List(ctx context.Context) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards")
	return r.query(ctx, sqlBuilder.Select(cardColumns...).From("flashcards").OrderBy("id ASC"))
}

func (r *cardRepository) GetMany(ctx context.Context, ids []int64) (map[int64]models.Card, error) {
	out := make(map[int64]models.Card, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cards, err := r.query(ctx, sqlBuilder.Select(cardColumns...).From("flashcards").Where(squirrel.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}
	for _, c := range cards {
		out[c.ID] = c
	}
	return out, nil
}

func (r *cardRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	query, args, err := sqlBuilder.Select(cardColumns...).From("flashcards").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	c, err := scanCard(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) FirstIDs(ctx context.Context, n int) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching first %d card ids", n)

	if n <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM flashcards ORDER BY id ASC LIMIT ?`, n)
	if err != nil {
		log.Error("failed to query card ids: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (r *cardRepository) ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	out := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlBuilder.Select("id").From("flashcards").Where(squirrel.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query card ids: %v", err)
		return nil, err
	}
	defer rows.Close()

	found, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}

func (r *cardRepository) Upsert(ctx context.Context, c models.Card) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("upserting card: id=%d", c.ID)

	var created bool
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM flashcards WHERE id = ?`, c.ID).Scan(&n); err != nil {
			return err
		}
		created = n == 0

		query, args, err := sqlBuilder.Insert("flashcards").
			Columns(cardColumns...).
			Values(c.ID, c.FrontImageURL, c.BackImageURL, c.Hanzi, c.Pinyin, c.Translation,
				c.Example, c.ExampleTranslation, c.TestSentence, c.CreatedAt).
			Suffix(`ON CONFLICT(id) DO UPDATE SET
    front_image_url = excluded.front_image_url,
    back_image_url = excluded.back_image_url,
    hanzi = excluded.hanzi,
    pinyin = excluded.pinyin,
    translation = excluded.translation,
    example = excluded.example,
    example_translation = excluded.example_translation,
    test_sentence = excluded.test_sentence`).
			ToSql()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Error("failed to upsert card: %v", err)
		return false, err
	}
	return created, nil
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
