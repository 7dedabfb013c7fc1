package repository

import (
	"context"

	"github.com/vytor/nihaocards/internal/models"
)

// AnswerRepository writes everything one answer changes in a single transaction.
type AnswerRepository interface {
	Commit(ctx context.Context, c models.AnswerCommit) error
}
