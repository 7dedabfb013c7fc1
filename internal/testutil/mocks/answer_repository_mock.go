package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/nihaocards/internal/models"
)

// MockAnswerRepository is a mock implementation of repository.AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) Commit(ctx context.Context, c models.AnswerCommit) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
