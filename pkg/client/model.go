package client

import (
	"fmt"
	"time"
)

// ProgressRecord mirrors the server's progress rows. List responses omit the
// user and game ids; the submit response carries them.
type ProgressRecord struct {
	UserID      uint      `json:"user_id,omitempty"`
	GameID      uint      `json:"game_id,omitempty"`
	Name        string    `json:"name"`
	URLPath     string    `json:"url_path"`
	HighScore   int       `json:"high_score"`
	TimesPlayed int       `json:"times_played"`
	LastPlayed  time.Time `json:"last_played"`
}

type Achievement struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	PointsReward int       `json:"points_reward"`
	EarnedAt     time.Time `json:"earned_at"`
}

type Stats struct {
	Points            int `json:"points"`
	Streak            int `json:"streak"`
	AchievementsCount int `json:"achievements_count"`
	GamesPlayed       int `json:"games_played"`
}

type LeaderboardEntry struct {
	Rank   int  `json:"rank"`
	UserID uint `json:"user_id"`
	Score  int  `json:"score"`
}

type scoreRequest struct {
	Score int `json:"score"`
}

// RequestError is the single failure type the client surfaces: a non-2xx
// response keeps the server-supplied message and status, a transport-level
// failure carries a generic message and no status.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
	}
	return e.Message
}
