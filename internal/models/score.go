package models

import "time"

// ScoreRecord is the persisted score line of one user in one mini-game.
type ScoreRecord struct {
	UserID     string    `json:"user_id"`
	Game       GameType  `json:"game_type"`
	TotalScore int       `json:"total_score"`
	BestScore  int       `json:"best_score"`
	BestStreak int       `json:"best_streak"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ScoreUpdate is the result of scoring one answer.
type ScoreUpdate struct {
	Delta      int  `json:"delta"`
	Streak     int  `json:"streak"`
	Combo      bool `json:"combo"`
	TotalScore int  `json:"total_score"`
	BestScore  int  `json:"best_score"`
	BestStreak int  `json:"best_streak"`
}

type GameStats struct {
	Current    int `json:"current"`
	Best       int `json:"best"`
	BestStreak int `json:"best_streak"`
}

type PersonalStats struct {
	SelectedWords     int                    `json:"selected_words"`
	Level7Words       int                    `json:"level7_words"`
	CurrentTotalScore int                    `json:"current_total_score"`
	BestTotalScore    int                    `json:"best_total_score"`
	PerGame           map[GameType]GameStats `json:"per_game"`
}

type RankingEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	TotalScore  int    `json:"total_score"`
}

// Rankings is a leaderboard plus the caller's place on it (0 when absent).
type Rankings struct {
	Game    string         `json:"game"`
	Entries []RankingEntry `json:"entries"`
	MyRank  int            `json:"my_rank"`
}
