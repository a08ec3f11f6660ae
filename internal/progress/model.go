package progress

import (
	"time"

	"github.com/lcastrov/ArcadeHub/internal/apperrors"
)

type Game struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	URLPath string `gorm:"uniqueIndex;not null" json:"url_path"`
}

// UserProgress keeps the current best score and play counter per user and
// game. The composite primary key backs the conditional upsert.
type UserProgress struct {
	UserID      uint      `gorm:"primaryKey" json:"user_id"`
	GameID      uint      `gorm:"primaryKey" json:"game_id"`
	HighScore   int       `gorm:"not null" json:"high_score"`
	TimesPlayed int       `gorm:"not null" json:"times_played"`
	LastPlayed  time.Time `json:"last_played"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

type CriteriaType string

const (
	CriteriaTimesPlayed CriteriaType = "times_played"
	CriteriaTotalPoints CriteriaType = "total_points"
)

type Achievement struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"uniqueIndex;not null" json:"name"`
	Description   string       `json:"description"`
	PointsReward  int          `json:"points_reward"`
	Criteria      CriteriaType `gorm:"not null" json:"-"`
	CriteriaValue int          `gorm:"not null" json:"-"`
}

// UserAchievement is written once per user and achievement, never updated.
type UserAchievement struct {
	UserID        uint      `gorm:"primaryKey" json:"user_id"`
	AchievementID uint      `gorm:"primaryKey" json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at"`
}

type GameProgressEntry struct {
	Name        string    `json:"name"`
	URLPath     string    `json:"url_path"`
	HighScore   int       `json:"high_score"`
	TimesPlayed int       `json:"times_played"`
	LastPlayed  time.Time `json:"last_played"`
}

// GameProgress is the submit response: the stored row joined with the game
// name and slug so callers can key their caches without a second lookup.
type GameProgress struct {
	UserID      uint      `json:"user_id"`
	GameID      uint      `json:"game_id"`
	Name        string    `json:"name"`
	URLPath     string    `json:"url_path"`
	HighScore   int       `json:"high_score"`
	TimesPlayed int       `json:"times_played"`
	LastPlayed  time.Time `json:"last_played"`
}

type AchievementEntry struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	PointsReward int       `json:"points_reward"`
	EarnedAt     time.Time `json:"earned_at"`
}

type UserStatsResponse struct {
	Points            int `json:"points"`
	Streak            int `json:"streak"`
	AchievementsCount int `json:"achievements_count"`
	GamesPlayed       int `json:"games_played"`
}

type ScoreRequest struct {
	Score int `json:"score"`
}

func (s *ScoreRequest) Validate() error {
	if s.Score < 0 {
		return apperrors.NewAppError(400, "score must not be negative", nil)
	}
	return nil
}

type LeaderboardEntry struct {
	Rank   int  `json:"rank"`
	UserID uint `json:"user_id"`
	Score  int  `json:"score"`
}
