package session

import (
	"context"
	"slices"
	"sync"

	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
)

// PlayedStore persists the ids already asked in the current lap of a
// (user, game, mode) queue.
type PlayedStore interface {
	PlayedIDs(ctx context.Context, userID string, game models.GameType, mode string) ([]int64, error)
	SetPlayedIDs(ctx context.Context, userID string, game models.GameType, mode string, ids []int64) error
	ClearPlayedIDs(ctx context.Context, userID string, game models.GameType, mode string) error
}

type playedKey struct {
	userID string
	game   models.GameType
	mode   string
}

// MemoryStore keeps played sets in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	sets map[playedKey][]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[playedKey][]int64)}
}

func (m *MemoryStore) PlayedIDs(_ context.Context, userID string, game models.GameType, mode string) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.sets[playedKey{userID, game, mode}]), nil
}

func (m *MemoryStore) SetPlayedIDs(_ context.Context, userID string, game models.GameType, mode string, ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(ids) == 0 {
		delete(m.sets, playedKey{userID, game, mode})
		return nil
	}
	m.sets[playedKey{userID, game, mode}] = slices.Clone(ids)
	return nil
}

func (m *MemoryStore) ClearPlayedIDs(_ context.Context, userID string, game models.GameType, mode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sets, playedKey{userID, game, mode})
	return nil
}

// FallbackStore reads and writes Primary and switches to Local whenever
// Primary fails. Local never fails.
type FallbackStore struct {
	Primary PlayedStore
	Local   *MemoryStore
}

func NewFallbackStore(primary PlayedStore) *FallbackStore {
	return &FallbackStore{Primary: primary, Local: NewMemoryStore()}
}

func (f *FallbackStore) PlayedIDs(ctx context.Context, userID string, game models.GameType, mode string) ([]int64, error) {
	ids, err := f.Primary.PlayedIDs(ctx, userID, game, mode)
	if err == nil {
		return ids, nil
	}
	logger.FromContext(ctx).WithPrefix("played_store").WithError(err).
		Warn("reading played ids for %s/%s failed, using local copy", game, mode)
	return f.Local.PlayedIDs(ctx, userID, game, mode)
}

func (f *FallbackStore) SetPlayedIDs(ctx context.Context, userID string, game models.GameType, mode string, ids []int64) error {
	if err := f.Primary.SetPlayedIDs(ctx, userID, game, mode, ids); err != nil {
		logger.FromContext(ctx).WithPrefix("played_store").WithError(err).
			Warn("saving played ids for %s/%s failed, keeping local copy", game, mode)
		return f.Local.SetPlayedIDs(ctx, userID, game, mode, ids)
	}
	// A stale local copy must not shadow later primary failures.
	return f.Local.ClearPlayedIDs(ctx, userID, game, mode)
}

func (f *FallbackStore) ClearPlayedIDs(ctx context.Context, userID string, game models.GameType, mode string) error {
	_ = f.Local.ClearPlayedIDs(ctx, userID, game, mode)
	if err := f.Primary.ClearPlayedIDs(ctx, userID, game, mode); err != nil {
		logger.FromContext(ctx).WithPrefix("played_store").WithError(err).
			Warn("clearing played ids for %s/%s failed", game, mode)
	}
	return nil
}
