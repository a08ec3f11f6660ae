package progress

import (
	"time"

	"github.com/lcastrov/ArcadeHub/internal/apperrors"
	"github.com/lcastrov/ArcadeHub/internal/user"
	"github.com/lcastrov/ArcadeHub/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	GameExists(gameID uint) (bool, error)
	UpsertProgress(userID, gameID uint, score int) (*GameProgress, error)
	AddUserPoints(userID uint, points int) error
	ListProgress(userID uint) ([]GameProgressEntry, error)
	ListAchievements(userID uint) ([]AchievementEntry, error)
	ListAchievementDefs() ([]Achievement, error)
	GrantAchievement(userID, achievementID uint) error
	FetchUserStats(userID uint) (*UserStatsResponse, error)
}

type DBProgressRepository struct{}

func (r *DBProgressRepository) GameExists(gameID uint) (bool, error) {
	var count int64
	if err := db.DB.Model(&Game{}).Where("id = ?", gameID).Count(&count).Error; err != nil {
		return false, apperrors.NewAppError(500, "Server error", err)
	}
	return count > 0, nil
}

// UpsertProgress runs a single INSERT ... ON CONFLICT DO UPDATE so that
// concurrent submissions for the same user and game cannot lose an update.
// The counter increment and the GREATEST comparison happen in the statement
// itself, never as a read followed by a write.
func (r *DBProgressRepository) UpsertProgress(userID, gameID uint, score int) (*GameProgress, error) {
	row := UserProgress{
		UserID:      userID,
		GameID:      gameID,
		HighScore:   score,
		TimesPlayed: 1,
		LastPlayed:  time.Now(),
	}

	err := db.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "game_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"high_score":   gorm.Expr("GREATEST(user_progress.high_score, EXCLUDED.high_score)"),
			"times_played": gorm.Expr("user_progress.times_played + 1"),
			"last_played":  gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, apperrors.NewAppError(500, "Error saving progress", err)
	}

	var result GameProgress
	errFetch := db.DB.Table("user_progress AS up").
		Select("up.user_id, up.game_id, g.name, g.url_path, up.high_score, up.times_played, up.last_played").
		Joins("JOIN games g ON g.id = up.game_id").
		Where("up.user_id = ? AND up.game_id = ?", userID, gameID).
		Scan(&result).Error
	if errFetch != nil {
		return nil, apperrors.NewAppError(500, "Error reading progress", errFetch)
	}

	return &result, nil
}

func (r *DBProgressRepository) AddUserPoints(userID uint, points int) error {
	result := db.DB.Model(&user.User{}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", points))
	if result.Error != nil {
		return apperrors.NewAppError(500, "Error updating points", result.Error)
	}
	return nil
}

func (r *DBProgressRepository) ListProgress(userID uint) ([]GameProgressEntry, error) {
	entries := []GameProgressEntry{}
	err := db.DB.Table("user_progress AS up").
		Select("g.name, g.url_path, up.high_score, up.times_played, up.last_played").
		Joins("JOIN games g ON g.id = up.game_id").
		Where("up.user_id = ?", userID).
		Scan(&entries).Error
	if err != nil {
		return nil, apperrors.NewAppError(500, "Error getting progress", err)
	}

	return entries, nil
}

func (r *DBProgressRepository) ListAchievements(userID uint) ([]AchievementEntry, error) {
	entries := []AchievementEntry{}
	err := db.DB.Table("user_achievements AS ua").
		Select("a.name, a.description, a.points_reward, ua.earned_at").
		Joins("JOIN achievements a ON a.id = ua.achievement_id").
		Where("ua.user_id = ?", userID).
		Scan(&entries).Error
	if err != nil {
		return nil, apperrors.NewAppError(500, "Error getting achievements", err)
	}

	return entries, nil
}

func (r *DBProgressRepository) ListAchievementDefs() ([]Achievement, error) {
	defs := []Achievement{}
	if err := db.DB.Find(&defs).Error; err != nil {
		return nil, apperrors.NewAppError(500, "Error getting achievement definitions", err)
	}
	return defs, nil
}

// GrantAchievement inserts the grant if it does not exist yet. Re-granting is
// a no-op, the earned_at of the first grant always wins.
func (r *DBProgressRepository) GrantAchievement(userID, achievementID uint) error {
	grant := UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		EarnedAt:      time.Now(),
	}
	err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&grant).Error
	if err != nil {
		return apperrors.NewAppError(500, "Error granting achievement", err)
	}
	return nil
}

func (r *DBProgressRepository) FetchUserStats(userID uint) (*UserStatsResponse, error) {
	var stats UserStatsResponse
	err := db.DB.Raw(
		`SELECT
			points,
			streak,
			(SELECT COUNT(*) FROM user_achievements WHERE user_id = ?) AS achievements_count,
			(SELECT COUNT(*) FROM user_progress WHERE user_id = ?) AS games_played
		FROM users
		WHERE id = ?`,
		userID, userID, userID,
	).Scan(&stats).Error
	if err != nil {
		return nil, apperrors.NewAppError(500, "Error getting stats", err)
	}

	return &stats, nil
}
