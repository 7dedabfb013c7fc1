package models

import "time"

// WrongWord is one entry of the append-only wrong answer log.
type WrongWord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CardID    int64     `json:"card_id"`
	Game      GameType  `json:"game_type"`
	CreatedAt time.Time `json:"created_at"`
}
