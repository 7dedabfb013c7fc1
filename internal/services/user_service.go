package services

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/nihaocards/internal/errors"
	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
)

// UserService handles user registration and lookup
type UserService interface {
	CreateUser(ctx context.Context, email, displayName string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo, now: time.Now}
}

func (s *userService) CreateUser(ctx context.Context, email, displayName string) (*models.User, error) {
	log := logger.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)
	log.Debug("creating user: email=%s", email)

	if email == "" {
		return nil, errors.NewValidationError("email", "cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errors.NewValidationError("email", "is not a valid address")
	}
	if displayName == "" {
		return nil, errors.NewValidationError("display_name", "cannot be empty")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to look up user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("a user with this email already exists")
	}

	user := models.User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.userRepo.Insert(ctx, user); err != nil {
		log.Error("failed to create user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("user created: id=%s", user.ID)
	return &user, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting user: id=%s", id)

	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing users")

	users, err := s.userRepo.List(ctx)
	if err != nil {
		log.Error("failed to list users: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return users, nil
}
