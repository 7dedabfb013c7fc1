package models

import "time"

// WrongCounts holds one wrong-answer counter per mini-game.
type WrongCounts map[GameType]int

func (w WrongCounts) Get(g GameType) int {
	if w == nil {
		return 0
	}
	return w[g]
}

func (w WrongCounts) Clone() WrongCounts {
	out := make(WrongCounts, len(MiniGameTypes))
	for _, g := range MiniGameTypes {
		out[g] = w.Get(g)
	}
	return out
}

// ProgressRecord is the per-user mastery state of one selected card. Its
// existence is what puts the card in the user's selection set.
type ProgressRecord struct {
	UserID             string      `json:"user_id"`
	CardID             int64       `json:"card_id"`
	Level              int         `json:"level"`
	WrongCount         int         `json:"wrong_count"`
	MiniGameWrongCount WrongCounts `json:"minigame_wrong_count"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// NewProgressRecord returns the state of a freshly selected card.
func NewProgressRecord(userID string, cardID int64) ProgressRecord {
	return ProgressRecord{
		UserID:             userID,
		CardID:             cardID,
		Level:              MinLevel,
		MiniGameWrongCount: WrongCounts{}.Clone(),
	}
}

// LevelCounts summarises a user's records for the flashcard hub.
type LevelCounts struct {
	Levels   map[int]int `json:"levels"`
	Mistakes int         `json:"mistakes"`
}

func (c LevelCounts) Count(l Level) int {
	if l == LevelMistakes {
		return c.Mistakes
	}
	return c.Levels[int(l)]
}
