package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/nihaocards/internal/models"
)

// MockRewardRepository is a mock implementation of repository.RewardRepository
type MockRewardRepository struct {
	mock.Mock
}

func (m *MockRewardRepository) Books(ctx context.Context) ([]models.StickerBook, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StickerBook), args.Error(1)
}

func (m *MockRewardRepository) Stickers(ctx context.Context, bookID int64) ([]models.Sticker, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sticker), args.Error(1)
}

func (m *MockRewardRepository) UserStickerIDs(ctx context.Context, userID string) (map[int64]bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}
