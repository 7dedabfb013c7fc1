package services

import (
	"context"
	"slices"
	"time"

	"github.com/vytor/nihaocards/internal/errors"
	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/progression"
	"github.com/vytor/nihaocards/internal/repository"
)

// SelectionService manages the set of cards a user studies. Selecting a card
// creates its progress record and deselecting deletes it.
type SelectionService interface {
	Select(ctx context.Context, userID string, cardID int64) error
	Deselect(ctx context.Context, userID string, cardID int64) error
	SelectFirstN(ctx context.Context, userID string, n int) (int, error)
	SelectMany(ctx context.Context, userID string, cardIDs []int64) (int, error)
	DeselectMany(ctx context.Context, userID string, cardIDs []int64) (int, error)
	SelectedIDs(ctx context.Context, userID string) ([]int64, error)
}

type selectionService struct {
	cardRepo     repository.CardRepository
	progressRepo repository.ProgressRepository
	now          func() time.Time
}

// NewSelectionService creates a new SelectionService
func NewSelectionService(cardRepo repository.CardRepository, progressRepo repository.ProgressRepository) SelectionService {
	return &selectionService{cardRepo: cardRepo, progressRepo: progressRepo, now: time.Now}
}

func (s *selectionService) Select(ctx context.Context, userID string, cardID int64) error {
	n, err := s.SelectMany(ctx, userID, []int64{cardID})
	if err != nil {
		return err
	}
	if n == 0 {
		// Either unknown or already selected.
		card, err := s.cardRepo.Get(ctx, cardID)
		if err != nil {
			return errors.NewInternalError(err)
		}
		if card == nil {
			return errors.NewNotFoundError("card", cardID)
		}
	}
	return nil
}

func (s *selectionService) Deselect(ctx context.Context, userID string, cardID int64) error {
	_, err := s.DeselectMany(ctx, userID, []int64{cardID})
	return err
}

func (s *selectionService) SelectFirstN(ctx context.Context, userID string, n int) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("selecting first cards: user_id=%s, n=%d", userID, n)

	if n <= 0 {
		return 0, errors.NewValidationError("n", "must be positive")
	}
	ids, err := s.cardRepo.FirstIDs(ctx, n)
	if err != nil {
		log.Error("failed to list first card ids: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return s.insert(ctx, userID, ids)
}

// SelectMany selects every known id; unknown ids are skipped.
func (s *selectionService) SelectMany(ctx context.Context, userID string, cardIDs []int64) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("selecting cards: user_id=%s, count=%d", userID, len(cardIDs))

	if len(cardIDs) == 0 {
		return 0, nil
	}
	existing, err := s.cardRepo.ExistingIDs(ctx, cardIDs)
	if err != nil {
		log.Error("failed to check card ids: %v", err)
		return 0, errors.NewInternalError(err)
	}

	known := make([]int64, 0, len(cardIDs))
	for _, id := range cardIDs {
		if existing[id] && !slices.Contains(known, id) {
			known = append(known, id)
		}
	}
	if skipped := len(cardIDs) - len(known); skipped > 0 {
		log.Debug("skipping %d unknown or duplicate card ids", skipped)
	}
	return s.insert(ctx, userID, known)
}

func (s *selectionService) insert(ctx context.Context, userID string, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	now := s.now().UTC()
	records := make([]models.ProgressRecord, 0, len(ids))
	for _, id := range ids {
		rec := models.NewProgressRecord(userID, id)
		rec.UpdatedAt = now
		records = append(records, rec)
	}

	n, err := s.progressRepo.InsertBatch(ctx, records)
	if err != nil {
		logger.FromContext(ctx).Error("failed to insert progress records: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return n, nil
}

func (s *selectionService) DeselectMany(ctx context.Context, userID string, cardIDs []int64) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("deselecting cards: user_id=%s, count=%d", userID, len(cardIDs))

	if len(cardIDs) == 0 {
		return 0, nil
	}
	n, err := s.progressRepo.DeleteBatch(ctx, userID, cardIDs)
	if err != nil {
		log.Error("failed to delete progress records: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return n, nil
}

func (s *selectionService) SelectedIDs(ctx context.Context, userID string) ([]int64, error) {
	records, err := s.progressRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return progression.SelectedIDs(records), nil
}
