package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
)

type answerRepository struct {
	db *sql.DB
}

// NewAnswerRepository creates a new AnswerRepository implementation
func NewAnswerRepository(db *sql.DB) repository.AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Commit(ctx context.Context, c models.AnswerCommit) error {
	log := logger.FromContext(ctx).WithPrefix("answer_repo")

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		if c.Progress != nil {
			if err := upsertProgress(ctx, tx, *c.Progress); err != nil {
				return err
			}
		}
		if c.Played != nil {
			if err := savePlayed(ctx, tx, *c.Played); err != nil {
				return err
			}
		}
		if c.Score != nil {
			if err := upsertScore(ctx, tx, *c.Score); err != nil {
				return err
			}
		}
		if c.WrongWord != nil {
			if err := insertWrongWord(ctx, tx, *c.WrongWord); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to commit answer: %v", err)
		return err
	}
	return nil
}
