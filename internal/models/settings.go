package models

import "time"

// Schedule holds the calendar gates of levels 3-6: weekday names for levels
// 3 and 4, days of month for levels 5 and 6.
type Schedule struct {
	Lv3 []string `json:"lv3"`
	Lv4 []string `json:"lv4"`
	Lv5 []int    `json:"lv5"`
	Lv6 []int    `json:"lv6"`
}

type Settings struct {
	UserID         string    `json:"user_id"`
	FlashcardTimer int       `json:"flashcard_timer"`
	MiniGameTimer  int       `json:"minigame_timer"`
	TypeTimer      int       `json:"type_timer"`
	Schedule       Schedule  `json:"schedule"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TimerFor returns the countdown in seconds for one question of g.
func (s Settings) TimerFor(g GameType) int {
	switch g {
	case GameFlashcard:
		return s.FlashcardTimer
	case GameTyping:
		return s.TypeTimer
	default:
		return s.MiniGameTimer
	}
}

// LevelAvailability is one row of the flashcard hub.
type LevelAvailability struct {
	Level     string `json:"level"`
	Count     int    `json:"count"`
	Available bool   `json:"available"`
}
