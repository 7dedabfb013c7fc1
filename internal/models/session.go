package models

import "time"

// PlayedSet is the persisted list of card ids already asked in the current
// lap of one (user, game, mode) queue.
type PlayedSet struct {
	UserID    string    `json:"user_id"`
	Game      GameType  `json:"game_type"`
	Mode      string    `json:"mode"`
	IDs       []int64   `json:"played_ids"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AnswerCommit groups every write caused by one answer so they land together.
type AnswerCommit struct {
	Progress  *ProgressRecord
	Played    *PlayedSet
	Score     *ScoreRecord
	WrongWord *WrongWord
}

// Choice is one option of a multiple-choice question.
type Choice struct {
	CardID int64  `json:"card_id"`
	Label  string `json:"label"`
}

// Question is the card currently asked in a session.
type Question struct {
	Seq          int      `json:"seq"`
	Card         Card     `json:"card"`
	Choices      []Choice `json:"choices,omitempty"`
	TimerSeconds int      `json:"timer_seconds"`
	Remaining    int      `json:"remaining"`
}

// AnswerOutcome reports what one answer (or timeout) did.
type AnswerOutcome struct {
	CardID   int64        `json:"card_id"`
	Correct  bool         `json:"correct"`
	TimedOut bool         `json:"timed_out"`
	Level    int          `json:"level"`
	Score    *ScoreUpdate `json:"score,omitempty"`
	Done     bool         `json:"done"`
	Next     *Question    `json:"next,omitempty"`
}

// SessionView is the externally visible state of a user's session.
type SessionView struct {
	ID          string         `json:"id"`
	Game        GameType       `json:"game_type"`
	Mode        string         `json:"mode"`
	Phase       string         `json:"phase"`
	Current     *Question      `json:"current,omitempty"`
	LastOutcome *AnswerOutcome `json:"last_outcome,omitempty"`
	Remaining   int            `json:"remaining"`
	TotalScore  int            `json:"total_score"`
	Streak      int            `json:"streak"`
}

// MiniGameOverview feeds the mini-game start screen.
type MiniGameOverview struct {
	Game        GameType `json:"game_type"`
	ReviewCount int      `json:"review_count"`
	NormalCount int      `json:"normal_count"`
	TotalScore  int      `json:"total_score"`
}
