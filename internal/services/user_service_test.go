package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nihaocards/internal/errors"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/services"
	"github.com/vytor/nihaocards/internal/testutil/mocks"
)

func TestCreateUser(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	svc := services.NewUserService(repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "mei@example.com").Return(nil, nil)
	repo.On("Insert", ctx, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "mei@example.com" && u.DisplayName == "Mei" && u.ID != ""
	})).Return(nil)

	user, err := svc.CreateUser(ctx, "  Mei@Example.com ", " Mei ")
	require.NoError(t, err)
	assert.Equal(t, "mei@example.com", user.Email)
	assert.Len(t, user.ID, 36)
	repo.AssertExpectations(t)
}

func TestCreateUser_Validation(t *testing.T) {
	svc := services.NewUserService(new(mocks.MockUserRepository))

	_, err := svc.CreateUser(context.Background(), "", "Mei")
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	_, err = svc.CreateUser(context.Background(), "not-an-email", "Mei")
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	_, err = svc.CreateUser(context.Background(), "mei@example.com", "  ")
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	svc := services.NewUserService(repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "mei@example.com").Return(&models.User{ID: "u1"}, nil)

	_, err := svc.CreateUser(ctx, "mei@example.com", "Mei")
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestGetUser(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	svc := services.NewUserService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "u1").Return(&models.User{ID: "u1"}, nil)
	repo.On("Get", ctx, "missing").Return(nil, nil)
	repo.On("Get", ctx, "broken").Return(nil, stderrors.New("db down"))

	user, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = svc.GetUser(ctx, "missing")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))

	_, err = svc.GetUser(ctx, "broken")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
}
