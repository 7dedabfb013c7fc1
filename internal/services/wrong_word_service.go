package services

import (
	"context"

	"github.com/vytor/nihaocards/internal/errors"
	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
)

// WrongWordService reads and prunes the wrong answer log. Entries are
// appended by the session service as part of an answer.
type WrongWordService interface {
	List(ctx context.Context, userID string) ([]models.WrongWord, error)
	Delete(ctx context.Context, userID, id string) error
}

type wrongWordService struct {
	wrongRepo repository.WrongWordRepository
}

// NewWrongWordService creates a new WrongWordService
func NewWrongWordService(wrongRepo repository.WrongWordRepository) WrongWordService {
	return &wrongWordService{wrongRepo: wrongRepo}
}

func (s *wrongWordService) List(ctx context.Context, userID string) ([]models.WrongWord, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing wrong words: user_id=%s", userID)

	words, err := s.wrongRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list wrong words: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return words, nil
}

func (s *wrongWordService) Delete(ctx context.Context, userID, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting wrong word: id=%s", id)

	found, err := s.wrongRepo.Delete(ctx, userID, id)
	if err != nil {
		log.Error("failed to delete wrong word: %v", err)
		return errors.NewInternalError(err)
	}
	if !found {
		return errors.NewNotFoundError("wrong word", id)
	}
	return nil
}
