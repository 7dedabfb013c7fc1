package repository

import (
	"context"

	"github.com/vytor/nihaocards/internal/models"
)

// WrongWordRepository handles the wrong answer log
type WrongWordRepository interface {
	Insert(ctx context.Context, w models.WrongWord) error
	ListByUser(ctx context.Context, userID string) ([]models.WrongWord, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}
