// Package progression moves cards between mastery levels. The primary
// flashcard flow and the mini-games keep separate counters; the functions
// here are pure so they can be replayed and tested without a store.
package progression

import (
	"sort"

	"github.com/vytor/nihaocards/internal/models"
)

// Result is the outcome of one question.
type Result int

const (
	Wrong Result = iota
	Correct
	TimedOut
)

func (r Result) Correct() bool {
	return r == Correct
}

func (r Result) String() string {
	switch r {
	case Correct:
		return "correct"
	case TimedOut:
		return "timeout"
	default:
		return "wrong"
	}
}

// FromAnswer maps a nullable self-report to a Result; nil means the timer ran out.
func FromAnswer(correct *bool) Result {
	switch {
	case correct == nil:
		return TimedOut
	case *correct:
		return Correct
	default:
		return Wrong
	}
}

// Outcome is the updated record plus the side effects the caller must apply.
type Outcome struct {
	Record models.ProgressRecord
	// LogWrong asks for an entry in the wrong-word log.
	LogWrong bool
	// DropFromQueue asks the session to remove every queued copy of the card.
	DropFromQueue bool
}

// ApplyFlashcardAnswer applies a primary-flow answer given at active.
func ApplyFlashcardAnswer(rec models.ProgressRecord, active models.Level, result Result) Outcome {
	rec = normalize(rec)
	if !result.Correct() {
		rec.Level = models.MinLevel
		rec.WrongCount++
		return Outcome{Record: rec, LogWrong: true}
	}

	if active == models.LevelMistakes {
		rec.Level = models.MinLevel
		rec.WrongCount = 0
		return Outcome{Record: rec}
	}

	next := int(active) + 1
	if next > models.MaxLevel {
		next = models.MaxLevel
	}
	rec.Level = next
	return Outcome{Record: rec}
}

// ApplyMiniGameAnswer applies a mini-game answer. resetPrimaryLevel controls
// whether a wrong answer also sends the card back to flashcard level 1.
func ApplyMiniGameAnswer(rec models.ProgressRecord, game models.GameType, mode models.Mode, result Result, resetPrimaryLevel bool) Outcome {
	rec = normalize(rec)
	if result.Correct() {
		if mode != models.ModeReview {
			return Outcome{Record: rec}
		}
		rec.MiniGameWrongCount[game] = 0
		return Outcome{Record: rec, DropFromQueue: true}
	}

	rec.MiniGameWrongCount[game]++
	if resetPrimaryLevel {
		rec.Level = models.MinLevel
	}
	return Outcome{Record: rec, LogWrong: true}
}

// normalize copies the counter map and clamps level into range, so a record
// read from a damaged row never leaks out of bounds.
func normalize(rec models.ProgressRecord) models.ProgressRecord {
	rec.MiniGameWrongCount = rec.MiniGameWrongCount.Clone()
	if rec.Level < models.MinLevel {
		rec.Level = models.MinLevel
	}
	if rec.Level > models.MaxLevel {
		rec.Level = models.MaxLevel
	}
	if rec.WrongCount < 0 {
		rec.WrongCount = 0
	}
	return rec
}

func InMistakesPool(rec models.ProgressRecord) bool {
	return rec.WrongCount >= models.MistakesThreshold
}

// InLevelPool reports membership of the level pool; mistakes cards are
// studied only in the mistakes pool.
func InLevelPool(rec models.ProgressRecord, level models.Level) bool {
	if level == models.LevelMistakes {
		return InMistakesPool(rec)
	}
	return !InMistakesPool(rec) && rec.Level == int(level)
}

func InReviewPool(rec models.ProgressRecord, game models.GameType) bool {
	return rec.MiniGameWrongCount.Get(game) > 0
}

// CountLevels buckets records for the flashcard hub.
func CountLevels(records []models.ProgressRecord) models.LevelCounts {
	counts := models.LevelCounts{Levels: make(map[int]int, models.MaxLevel)}
	for l := models.MinLevel; l <= models.MaxLevel; l++ {
		counts.Levels[l] = 0
	}
	for _, rec := range records {
		if InMistakesPool(rec) {
			counts.Mistakes++
			continue
		}
		counts.Levels[rec.Level]++
	}
	return counts
}

// FlashcardPool returns the sorted card ids playable at level.
func FlashcardPool(records []models.ProgressRecord, level models.Level) []int64 {
	return collect(records, func(rec models.ProgressRecord) bool {
		return InLevelPool(rec, level)
	})
}

// ReviewPool returns the sorted card ids in game's review pool.
func ReviewPool(records []models.ProgressRecord, game models.GameType) []int64 {
	return collect(records, func(rec models.ProgressRecord) bool {
		return InReviewPool(rec, game)
	})
}

// SelectedIDs returns every selected card id, sorted.
func SelectedIDs(records []models.ProgressRecord) []int64 {
	return collect(records, func(models.ProgressRecord) bool { return true })
}

func collect(records []models.ProgressRecord, keep func(models.ProgressRecord) bool) []int64 {
	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		if keep(rec) {
			ids = append(ids, rec.CardID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
