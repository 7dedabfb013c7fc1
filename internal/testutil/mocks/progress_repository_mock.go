package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/nihaocards/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, userID string, cardID int64) (*models.ProgressRecord, error) {
	args := m.Called(ctx, userID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) ListByUser(ctx context.Context, userID string) ([]models.ProgressRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) InsertBatch(ctx context.Context, records []models.ProgressRecord) (int, error) {
	args := m.Called(ctx, records)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressRepository) DeleteBatch(ctx context.Context, userID string, cardIDs []int64) (int, error) {
	args := m.Called(ctx, userID, cardIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressRepository) Upsert(ctx context.Context, record models.ProgressRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
