package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nihaocards/internal/errors"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/services"
	"github.com/vytor/nihaocards/internal/testutil/mocks"
)

func TestOpenBook_MarksUnlockedAndQueuesUnlock(t *testing.T) {
	repo := new(mocks.MockRewardRepository)
	queue := new(mocks.MockJobQueue)
	svc := services.NewRewardService(repo, queue)
	ctx := context.Background()

	repo.On("Stickers", ctx, int64(1)).Return([]models.Sticker{
		{ID: 10, BookID: 1, Name: "panda"},
		{ID: 11, BookID: 1, Name: "tiger"},
	}, nil)
	repo.On("UserStickerIDs", ctx, "u1").Return(map[int64]bool{11: true}, nil)
	queue.On("EnqueueStickerUnlock", "u1").Return(nil)

	stickers, err := svc.OpenBook(ctx, "u1", 1)
	require.NoError(t, err)
	require.Len(t, stickers, 2)
	assert.False(t, stickers[0].Unlocked)
	assert.True(t, stickers[1].Unlocked)
	queue.AssertExpectations(t)
}

func TestOpenBook_QueueFullIsNotAnError(t *testing.T) {
	repo := new(mocks.MockRewardRepository)
	queue := new(mocks.MockJobQueue)
	svc := services.NewRewardService(repo, queue)
	ctx := context.Background()

	repo.On("Stickers", ctx, int64(1)).Return([]models.Sticker{{ID: 10, BookID: 1}}, nil)
	repo.On("UserStickerIDs", ctx, "u1").Return(map[int64]bool{}, nil)
	queue.On("EnqueueStickerUnlock", "u1").Return(stderrors.New("queue full"))

	_, err := svc.OpenBook(ctx, "u1", 1)
	assert.NoError(t, err)
}

func TestOpenBook_UnknownBook(t *testing.T) {
	repo := new(mocks.MockRewardRepository)
	svc := services.NewRewardService(repo, new(mocks.MockJobQueue))
	ctx := context.Background()

	repo.On("Stickers", ctx, int64(9)).Return([]models.Sticker{}, nil)
	repo.On("Books", ctx).Return([]models.StickerBook{{ID: 1, Title: "Animals"}}, nil)

	_, err := svc.OpenBook(ctx, "u1", 9)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestMyStickerIDs(t *testing.T) {
	repo := new(mocks.MockRewardRepository)
	svc := services.NewRewardService(repo, new(mocks.MockJobQueue))
	ctx := context.Background()

	repo.On("UserStickerIDs", ctx, "u1").Return(map[int64]bool{12: true, 3: true}, nil)

	ids, err := svc.MyStickerIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 12}, ids)
}
