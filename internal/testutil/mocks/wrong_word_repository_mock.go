package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/nihaocards/internal/models"
)

// MockWrongWordRepository is a mock implementation of repository.WrongWordRepository
type MockWrongWordRepository struct {
	mock.Mock
}

func (m *MockWrongWordRepository) Insert(ctx context.Context, w models.WrongWord) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWrongWordRepository) ListByUser(ctx context.Context, userID string) ([]models.WrongWord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WrongWord), args.Error(1)
}

func (m *MockWrongWordRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}
