package services

import (
	"context"
	"slices"

	"github.com/vytor/nihaocards/internal/errors"
	"github.com/vytor/nihaocards/internal/jobs"
	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
)

// RewardService lists sticker books and triggers the unlock check
type RewardService interface {
	Books(ctx context.Context) ([]models.StickerBook, error)
	// OpenBook lists a book's stickers with the user's unlocks marked and
	// queues an unlock check in the background.
	OpenBook(ctx context.Context, userID string, bookID int64) ([]models.Sticker, error)
	MyStickerIDs(ctx context.Context, userID string) ([]int64, error)
}

type rewardService struct {
	rewardRepo repository.RewardRepository
	jobQueue   jobs.JobQueue
}

// NewRewardService creates a new RewardService
func NewRewardService(rewardRepo repository.RewardRepository, jobQueue jobs.JobQueue) RewardService {
	return &rewardService{rewardRepo: rewardRepo, jobQueue: jobQueue}
}

func (s *rewardService) Books(ctx context.Context) ([]models.StickerBook, error) {
	books, err := s.rewardRepo.Books(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list sticker books: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return books, nil
}

func (s *rewardService) OpenBook(ctx context.Context, userID string, bookID int64) ([]models.Sticker, error) {
	log := logger.FromContext(ctx)
	log.Debug("opening sticker book: user_id=%s, book_id=%d", userID, bookID)

	stickers, err := s.rewardRepo.Stickers(ctx, bookID)
	if err != nil {
		log.Error("failed to list stickers: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(stickers) == 0 {
		books, err := s.rewardRepo.Books(ctx)
		if err != nil {
			log.Error("failed to list sticker books: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if !slices.ContainsFunc(books, func(b models.StickerBook) bool { return b.ID == bookID }) {
			return nil, errors.NewNotFoundError("sticker book", bookID)
		}
	}

	owned, err := s.rewardRepo.UserStickerIDs(ctx, userID)
	if err != nil {
		log.Error("failed to list user stickers: %v", err)
		return nil, errors.NewInternalError(err)
	}
	for i := range stickers {
		stickers[i].Unlocked = owned[stickers[i].ID]
	}

	// Unlocks show up the next time the book is opened.
	if err := s.jobQueue.EnqueueStickerUnlock(userID); err != nil {
		log.Warn("failed to queue sticker unlock: %v", err)
	}
	return stickers, nil
}

func (s *rewardService) MyStickerIDs(ctx context.Context, userID string) ([]int64, error) {
	owned, err := s.rewardRepo.UserStickerIDs(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list user stickers: %v", err)
		return nil, errors.NewInternalError(err)
	}
	ids := make([]int64, 0, len(owned))
	for id, ok := range owned {
		if ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}
