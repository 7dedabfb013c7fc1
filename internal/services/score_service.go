package services

import (
	"context"

	"github.com/vytor/nihaocards/internal/errors"
	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
)

// ScoreService reads personal statistics and leaderboards
type ScoreService interface {
	PersonalStats(ctx context.Context, userID string) (*models.PersonalStats, error)
	// Rankings returns the overall board when game is empty.
	Rankings(ctx context.Context, userID, game string) (*models.Rankings, error)
}

type scoreService struct {
	scoreRepo    repository.ScoreRepository
	progressRepo repository.ProgressRepository
	limit        int
}

// NewScoreService creates a new ScoreService
func NewScoreService(scoreRepo repository.ScoreRepository, progressRepo repository.ProgressRepository, limit int) ScoreService {
	return &scoreService{scoreRepo: scoreRepo, progressRepo: progressRepo, limit: limit}
}

func (s *scoreService) PersonalStats(ctx context.Context, userID string) (*models.PersonalStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting personal stats: user_id=%s", userID)

	records, err := s.progressRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	scores, err := s.scoreRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list scores: %v", err)
		return nil, errors.NewInternalError(err)
	}

	stats := &models.PersonalStats{
		SelectedWords: len(records),
		PerGame:       make(map[models.GameType]models.GameStats, len(models.MiniGameTypes)),
	}
	for _, rec := range records {
		if rec.Level == models.MaxLevel {
			stats.Level7Words++
		}
	}
	for _, g := range models.MiniGameTypes {
		stats.PerGame[g] = models.GameStats{}
	}
	for _, sc := range scores {
		if !sc.Game.IsMiniGame() {
			continue
		}
		stats.PerGame[sc.Game] = models.GameStats{
			Current:    sc.TotalScore,
			Best:       sc.BestScore,
			BestStreak: sc.BestStreak,
		}
		stats.CurrentTotalScore += sc.TotalScore
		stats.BestTotalScore += sc.BestScore
	}
	return stats, nil
}

func (s *scoreService) Rankings(ctx context.Context, userID, game string) (*models.Rankings, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting rankings: game=%q", game)

	var gameType models.GameType
	if game != "" {
		g, ok := models.ParseMiniGame(game)
		if !ok {
			return nil, errors.NewValidationError("game", "unknown game type")
		}
		gameType = g
	}

	entries, err := s.scoreRepo.Rankings(ctx, gameType, s.limit)
	if err != nil {
		log.Error("failed to get rankings: %v", err)
		return nil, errors.NewInternalError(err)
	}

	out := &models.Rankings{Game: string(gameType), Entries: entries}
	if out.Game == "" {
		out.Game = "all"
	}
	for _, e := range entries {
		if e.UserID == userID {
			out.MyRank = e.Rank
			break
		}
	}
	return out, nil
}
