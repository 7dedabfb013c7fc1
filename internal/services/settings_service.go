package services

import (
	"context"
	"time"

	"github.com/vytor/nihaocards/internal/errors"
	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/progression"
	"github.com/vytor/nihaocards/internal/repository"
	"github.com/vytor/nihaocards/internal/schedule"
)

// Timers holds the three countdown lengths in seconds.
type Timers struct {
	Flashcard int `json:"flashcard_timer"`
	MiniGame  int `json:"minigame_timer"`
	Type      int `json:"type_timer"`
}

// SettingsService handles per-user timers, the level schedule and the
// flashcard hub built from them.
type SettingsService interface {
	Get(ctx context.Context, userID string) (*models.Settings, error)
	UpdateTimers(ctx context.Context, userID string, t Timers) (*models.Settings, error)
	ToggleWeekday(ctx context.Context, userID, day string) (*models.Settings, error)
	ToggleDate(ctx context.Context, userID string, date int) (*models.Settings, error)
	LevelOverview(ctx context.Context, userID string) ([]models.LevelAvailability, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	progressRepo repository.ProgressRepository
	defaults     Timers
	now          func() time.Time
}

// NewSettingsService creates a new SettingsService. defaults apply until a
// user saves their own timers.
func NewSettingsService(settingsRepo repository.SettingsRepository, progressRepo repository.ProgressRepository, defaults Timers) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		progressRepo: progressRepo,
		defaults:     defaults,
		now:          time.Now,
	}
}

func (s *settingsService) Get(ctx context.Context, userID string) (*models.Settings, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting settings: user_id=%s", userID)

	stored, err := s.settingsRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to get settings: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if stored == nil {
		return &models.Settings{
			UserID:         userID,
			FlashcardTimer: s.defaults.Flashcard,
			MiniGameTimer:  s.defaults.MiniGame,
			TypeTimer:      s.defaults.Type,
			Schedule:       models.Schedule{Lv3: []string{}, Lv4: []string{}, Lv5: []int{}, Lv6: []int{}},
		}, nil
	}

	stored.FlashcardTimer = orDefault(stored.FlashcardTimer, s.defaults.Flashcard)
	stored.MiniGameTimer = orDefault(stored.MiniGameTimer, s.defaults.MiniGame)
	stored.TypeTimer = orDefault(stored.TypeTimer, s.defaults.Type)
	stored.Schedule = schedule.Normalize(stored.Schedule)
	return stored, nil
}

func orDefault(v, def int) int {
	if v < 1 {
		return def
	}
	return v
}

func (s *settingsService) UpdateTimers(ctx context.Context, userID string, t Timers) (*models.Settings, error) {
	for _, f := range []struct {
		name  string
		value int
	}{
		{"flashcard_timer", t.Flashcard},
		{"minigame_timer", t.MiniGame},
		{"type_timer", t.Type},
	} {
		if f.value < 1 {
			return nil, errors.NewValidationError(f.name, "must be at least 1 second")
		}
	}

	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	current.FlashcardTimer = t.Flashcard
	current.MiniGameTimer = t.MiniGame
	current.TypeTimer = t.Type
	return s.save(ctx, current)
}

func (s *settingsService) ToggleWeekday(ctx context.Context, userID, day string) (*models.Settings, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	next, err := schedule.ToggleWeekday(current.Schedule, day)
	if err != nil {
		return nil, errors.NewValidationError("day", err.Error())
	}
	current.Schedule = next
	return s.save(ctx, current)
}

func (s *settingsService) ToggleDate(ctx context.Context, userID string, date int) (*models.Settings, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	next, err := schedule.ToggleDate(current.Schedule, date)
	if err != nil {
		return nil, errors.NewValidationError("date", err.Error())
	}
	current.Schedule = next
	return s.save(ctx, current)
}

func (s *settingsService) save(ctx context.Context, settings *models.Settings) (*models.Settings, error) {
	settings.UpdatedAt = s.now().UTC()
	if err := s.settingsRepo.Upsert(ctx, *settings); err != nil {
		logger.FromContext(ctx).Error("failed to save settings: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return settings, nil
}

// LevelOverview lists levels 1-7 then mistakes, each with its card count and
// whether a session may start today.
func (s *settingsService) LevelOverview(ctx context.Context, userID string) ([]models.LevelAvailability, error) {
	log := logger.FromContext(ctx)

	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, err := s.progressRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	counts := progression.CountLevels(records)
	today := s.now()
	levels := make([]models.Level, 0, models.MaxLevel+1)
	for l := models.MinLevel; l <= models.MaxLevel; l++ {
		levels = append(levels, models.Level(l))
	}
	levels = append(levels, models.LevelMistakes)

	out := make([]models.LevelAvailability, 0, len(levels))
	for _, l := range levels {
		out = append(out, models.LevelAvailability{
			Level:     l.String(),
			Count:     counts.Count(l),
			Available: schedule.IsLevelAvailable(settings.Schedule, l, today),
		})
	}
	return out, nil
}
