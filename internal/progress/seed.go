package progress

import (
	"github.com/lcastrov/ArcadeHub/pkg/db"
)

var defaultGames = []Game{
	{Name: "Pong", URLPath: "pong"},
	{Name: "Snake", URLPath: "snake"},
	{Name: "Tetris", URLPath: "tetris"},
	{Name: "Breakout", URLPath: "breakout"},
	{Name: "Space Invaders", URLPath: "space-invaders"},
}

var defaultAchievements = []Achievement{
	{Name: "First Steps", Description: "Play your first game", PointsReward: 10, Criteria: CriteriaTimesPlayed, CriteriaValue: 1},
	{Name: "Regular", Description: "Play the same game 10 times", PointsReward: 25, Criteria: CriteriaTimesPlayed, CriteriaValue: 10},
	{Name: "Veteran", Description: "Play the same game 50 times", PointsReward: 100, Criteria: CriteriaTimesPlayed, CriteriaValue: 50},
	{Name: "Point Collector", Description: "Reach 1000 total points", PointsReward: 50, Criteria: CriteriaTotalPoints, CriteriaValue: 1000},
	{Name: "High Roller", Description: "Reach 10000 total points", PointsReward: 200, Criteria: CriteriaTotalPoints, CriteriaValue: 10000},
}

// SeedDefaults inserts the built-in game catalog and achievement definitions.
// Safe to run on every startup.
func SeedDefaults() error {
	for i := range defaultGames {
		game := defaultGames[i]
		if err := db.DB.Where(Game{URLPath: game.URLPath}).FirstOrCreate(&game).Error; err != nil {
			return err
		}
	}

	for i := range defaultAchievements {
		achievement := defaultAchievements[i]
		if err := db.DB.Where(Achievement{Name: achievement.Name}).FirstOrCreate(&achievement).Error; err != nil {
			return err
		}
	}

	return nil
}
