package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/nihaocards/internal/models"
)

// MockScoreRepository is a mock implementation of repository.ScoreRepository
type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) Get(ctx context.Context, userID string, game models.GameType) (*models.ScoreRecord, error) {
	args := m.Called(ctx, userID, game)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScoreRecord), args.Error(1)
}

func (m *MockScoreRepository) ListByUser(ctx context.Context, userID string) ([]models.ScoreRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ScoreRecord), args.Error(1)
}

func (m *MockScoreRepository) Upsert(ctx context.Context, score models.ScoreRecord) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *MockScoreRepository) Rankings(ctx context.Context, game models.GameType, limit int) ([]models.RankingEntry, error) {
	args := m.Called(ctx, game, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RankingEntry), args.Error(1)
}
