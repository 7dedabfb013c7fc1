package repository

import (
	"context"

	"github.com/vytor/nihaocards/internal/models"
)

// UserRepository handles user data access
type UserRepository interface {
	Insert(ctx context.Context, user models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}
