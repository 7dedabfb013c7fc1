package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nihaocards/internal/errors"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/services"
	"github.com/vytor/nihaocards/internal/testutil/mocks"
)

func TestPersonalStats(t *testing.T) {
	scores := new(mocks.MockScoreRepository)
	progress := new(mocks.MockProgressRepository)
	svc := services.NewScoreService(scores, progress, 100)
	ctx := context.Background()

	progress.On("ListByUser", ctx, "u1").Return([]models.ProgressRecord{
		{CardID: 1, Level: 7},
		{CardID: 2, Level: 3},
		{CardID: 3, Level: 7},
	}, nil)
	scores.On("ListByUser", ctx, "u1").Return([]models.ScoreRecord{
		{Game: models.GameThai, TotalScore: 10, BestScore: 15, BestStreak: 6},
		{Game: models.GameTyping, TotalScore: 4, BestScore: 4, BestStreak: 2},
	}, nil)

	stats, err := svc.PersonalStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.SelectedWords)
	assert.Equal(t, 2, stats.Level7Words)
	assert.Equal(t, 14, stats.CurrentTotalScore)
	assert.Equal(t, 19, stats.BestTotalScore)
	assert.Len(t, stats.PerGame, 4)
	assert.Equal(t, 6, stats.PerGame[models.GameThai].BestStreak)
	assert.Zero(t, stats.PerGame[models.GamePinyin].Current)
}

func TestRankings(t *testing.T) {
	scores := new(mocks.MockScoreRepository)
	svc := services.NewScoreService(scores, new(mocks.MockProgressRepository), 2)
	ctx := context.Background()

	entries := []models.RankingEntry{
		{Rank: 1, UserID: "u2", TotalScore: 30},
		{Rank: 2, UserID: "u1", TotalScore: 20},
	}
	scores.On("Rankings", ctx, models.GameType(""), 2).Return(entries, nil)
	scores.On("Rankings", ctx, models.GamePinyin, 2).Return([]models.RankingEntry{}, nil)

	all, err := svc.Rankings(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, "all", all.Game)
	assert.Equal(t, 2, all.MyRank)

	pinyin, err := svc.Rankings(ctx, "u1", "pinyin")
	require.NoError(t, err)
	assert.Equal(t, "pinyin", pinyin.Game)
	assert.Zero(t, pinyin.MyRank)

	_, err = svc.Rankings(ctx, "u1", "flashcard")
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}
