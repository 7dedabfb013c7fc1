package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/nihaocards/internal/models"
)

// MockPlayedRepository is a mock implementation of repository.PlayedRepository
type MockPlayedRepository struct {
	mock.Mock
}

func (m *MockPlayedRepository) PlayedIDs(ctx context.Context, userID string, game models.GameType, mode string) ([]int64, error) {
	args := m.Called(ctx, userID, game, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockPlayedRepository) SetPlayedIDs(ctx context.Context, userID string, game models.GameType, mode string, ids []int64) error {
	args := m.Called(ctx, userID, game, mode, ids)
	return args.Error(0)
}

func (m *MockPlayedRepository) ClearPlayedIDs(ctx context.Context, userID string, game models.GameType, mode string) error {
	args := m.Called(ctx, userID, game, mode)
	return args.Error(0)
}
