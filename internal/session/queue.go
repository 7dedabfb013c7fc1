// Package session runs one play session: a shuffled queue of card ids built
// from a pool, the lap bookkeeping behind it, and the per-question countdown.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
)

var (
	ErrNoWords    = errors.New("no words to play")
	ErrNotActive  = errors.New("session is not active")
	ErrNotCurrent = errors.New("card is not the current question")
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseBuilding
	PhaseActive
	PhaseDone
	PhaseAborted
)

func (p Phase) String() string {
	switch p {
	case PhaseBuilding:
		return "building"
	case PhaseActive:
		return "active"
	case PhaseDone:
		return "done"
	case PhaseAborted:
		return "aborted"
	default:
		return "idle"
	}
}

// NewRand returns a PCG source seeded with seed, or with the clock when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle permutes ids in place (Fisher-Yates).
func Shuffle(rng *rand.Rand, ids []int64) {
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
}

// RemainingInLap counts the pool ids not yet played, or the whole pool when
// the lap is exhausted and the next start would reshuffle it.
func RemainingInLap(pool, played []int64) int {
	n := 0
	for _, id := range pool {
		if !slices.Contains(played, id) {
			n++
		}
	}
	if n == 0 {
		return len(pool)
	}
	return n
}

// Step is the queue state after one answered question. Played is the set to
// persist; it is empty when Done, which clears the stored marker.
type Step struct {
	Played []int64
	Done   bool
}

// Queue is the play order of one (user, game, mode) session. It is not safe
// for concurrent use; the owner serializes answers.
type Queue struct {
	UserID string
	Game   models.GameType
	Mode   string

	store     PlayedStore
	rng       *rand.Rand
	phase     Phase
	played    []int64
	remaining []int64
}

func NewQueue(store PlayedStore, rng *rand.Rand, userID string, game models.GameType, mode string) *Queue {
	return &Queue{UserID: userID, Game: game, Mode: mode, store: store, rng: rng}
}

// Build resolves the queue for pool. Played ids that left the pool are
// pruned; when nothing is left to play the marker is cleared and the whole
// pool is reshuffled as a new lap.
func (q *Queue) Build(ctx context.Context, pool []int64) error {
	log := logger.FromContext(ctx).WithPrefix("queue").
		WithFields(map[string]any{"game": q.Game, "mode": q.Mode})

	q.phase = PhaseBuilding
	if len(pool) == 0 {
		q.phase = PhaseAborted
		return ErrNoWords
	}

	stored, err := q.store.PlayedIDs(ctx, q.UserID, q.Game, q.Mode)
	if err != nil {
		log.WithError(err).Warn("loading played ids failed, starting fresh")
		stored = nil
	}

	valid := make([]int64, 0, len(stored))
	for _, id := range stored {
		if slices.Contains(pool, id) && !slices.Contains(valid, id) {
			valid = append(valid, id)
		}
	}
	if len(valid) != len(stored) {
		if err := q.store.SetPlayedIDs(ctx, q.UserID, q.Game, q.Mode, valid); err != nil {
			log.WithError(err).Warn("saving pruned played ids failed")
		}
	}

	remaining := make([]int64, 0, len(pool))
	for _, id := range pool {
		if !slices.Contains(valid, id) {
			remaining = append(remaining, id)
		}
	}

	if len(remaining) == 0 {
		log.Debug("lap complete, reshuffling %d cards", len(pool))
		if err := q.store.ClearPlayedIDs(ctx, q.UserID, q.Game, q.Mode); err != nil {
			log.WithError(err).Warn("clearing played ids failed")
		}
		valid = nil
		remaining = slices.Clone(pool)
	}

	Shuffle(q.rng, remaining)
	q.played = valid
	q.remaining = remaining
	q.phase = PhaseActive
	log.Debug("queue built: %d remaining, %d already played", len(remaining), len(valid))
	return nil
}

func (q *Queue) Phase() Phase { return q.phase }

// Current returns the id at the front of the queue.
func (q *Queue) Current() (int64, bool) {
	if q.phase != PhaseActive || len(q.remaining) == 0 {
		return 0, false
	}
	return q.remaining[0], true
}

// Remaining returns a copy of the ids still to be asked, front first.
func (q *Queue) Remaining() []int64 {
	return slices.Clone(q.remaining)
}

func (q *Queue) Len() int { return len(q.remaining) }

// Advance marks cardID as played and pops it. dropAll also removes any other
// queued copy of the id. Nothing is persisted here; the caller stores
// Step.Played together with the rest of the answer.
func (q *Queue) Advance(cardID int64, dropAll bool) (Step, error) {
	if q.phase != PhaseActive {
		return Step{}, ErrNotActive
	}
	if len(q.remaining) == 0 || q.remaining[0] != cardID {
		return Step{}, fmt.Errorf("%w: %d", ErrNotCurrent, cardID)
	}

	if !slices.Contains(q.played, cardID) {
		q.played = append(q.played, cardID)
	}
	q.remaining = q.remaining[1:]
	if dropAll {
		q.remaining = slices.DeleteFunc(q.remaining, func(id int64) bool { return id == cardID })
	}

	if len(q.remaining) == 0 {
		q.phase = PhaseDone
		q.played = nil
		return Step{Done: true}, nil
	}
	return Step{Played: slices.Clone(q.played)}, nil
}

// Abort abandons the queue. The stored played set is left as is so a later
// start resumes the lap.
func (q *Queue) Abort() {
	if q.phase == PhaseActive || q.phase == PhaseBuilding {
		q.phase = PhaseAborted
	}
}
