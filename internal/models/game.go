package models

import (
	"fmt"
	"strconv"
	"strings"
)

// GameType identifies a play flow. The primary flashcard flow and each
// mini-game keep independent wrong counters and played sets.
type GameType string

const (
	GameFlashcard GameType = "flashcard"
	GameThai      GameType = "th"
	GamePinyin    GameType = "pinyin"
	GameVocab     GameType = "vol"
	GameTyping    GameType = "type"
)

// MiniGameTypes lists every mini-game in display order.
var MiniGameTypes = []GameType{GameThai, GamePinyin, GameVocab, GameTyping}

// IsMiniGame reports whether g is one of MiniGameTypes.
func (g GameType) IsMiniGame() bool {
	for _, mg := range MiniGameTypes {
		if g == mg {
			return true
		}
	}
	return false
}

// ParseMiniGame validates a mini-game name.
func ParseMiniGame(s string) (GameType, bool) {
	g := GameType(strings.ToLower(strings.TrimSpace(s)))
	return g, g.IsMiniGame()
}

// Mode selects the mini-game pool.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeReview Mode = "review"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeNormal:
		return ModeNormal, true
	case ModeReview:
		return ModeReview, true
	}
	return "", false
}

const (
	MinLevel = 1
	MaxLevel = 7

	// MistakesThreshold is the primary wrong count from which a card is
	// studied in the mistakes pool instead of its level.
	MistakesThreshold = 3
)

// Level is a primary-flow stage 1..7, or LevelMistakes for the pseudo-level
// holding cards with too many wrong answers.
type Level int

const LevelMistakes Level = 0

// ParseLevel accepts "1".."7" or "mistakes".
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "mistakes" {
		return LevelMistakes, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < MinLevel || n > MaxLevel {
		return 0, fmt.Errorf("level must be 1-%d or \"mistakes\", got %q", MaxLevel, s)
	}
	return Level(n), nil
}

func (l Level) String() string {
	if l == LevelMistakes {
		return "mistakes"
	}
	return strconv.Itoa(int(l))
}

// Valid reports whether l is a real level or the mistakes pseudo-level.
func (l Level) Valid() bool {
	return l == LevelMistakes || (l >= MinLevel && l <= MaxLevel)
}

// QueueMode is the played-set mode key for a flashcard session at l.
func (l Level) QueueMode() string {
	if l == LevelMistakes {
		return "mistakes"
	}
	return "lv" + strconv.Itoa(int(l))
}
