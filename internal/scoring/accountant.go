// Package scoring keeps the per mini-game score, best score and streak.
package scoring

import "github.com/vytor/nihaocards/internal/models"

const (
	// ComboStreak is the streak from which the combo signal is raised.
	ComboStreak = 5
	// BonusAfter is the streak that must be exceeded to earn BonusPoints.
	BonusAfter = 5

	BasePoints   = 1
	BonusPoints  = 2
	WrongPenalty = 3
)

// Accountant scores one (user, game) pair. The streak is session-scoped and
// starts at zero; totals and bests come from the stored record.
type Accountant struct {
	userID     string
	game       models.GameType
	total      int
	best       int
	bestStreak int
	streak     int
}

func New(rec models.ScoreRecord) *Accountant {
	return &Accountant{
		userID:     rec.UserID,
		game:       rec.Game,
		total:      max(0, rec.TotalScore),
		best:       rec.BestScore,
		bestStreak: rec.BestStreak,
	}
}

// Record scores one answer. A timeout counts as wrong.
func (a *Accountant) Record(correct bool) models.ScoreUpdate {
	var delta int
	if correct {
		a.streak++
		delta = BasePoints
		if a.streak > BonusAfter {
			delta = BonusPoints
		}
		a.total += delta
	} else {
		a.streak = 0
		next := max(0, a.total-WrongPenalty)
		delta = next - a.total
		a.total = next
	}
	a.best = max(a.best, a.total)
	a.bestStreak = max(a.bestStreak, a.streak)

	return models.ScoreUpdate{
		Delta:      delta,
		Streak:     a.streak,
		Combo:      correct && a.streak >= ComboStreak,
		TotalScore: a.total,
		BestScore:  a.best,
		BestStreak: a.bestStreak,
	}
}

func (a *Accountant) Streak() int { return a.streak }

func (a *Accountant) Total() int { return a.total }

// Snapshot returns the record to persist.
func (a *Accountant) Snapshot() models.ScoreRecord {
	return models.ScoreRecord{
		UserID:     a.userID,
		Game:       a.game,
		TotalScore: a.total,
		BestScore:  a.best,
		BestStreak: a.bestStreak,
	}
}
