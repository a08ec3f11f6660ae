package progress

import (
	"context"
	"strconv"

	"github.com/lcastrov/ArcadeHub/internal/apperrors"
	"github.com/lcastrov/ArcadeHub/pkg/db"
	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

type LeaderboardRepository interface {
	RecordScore(urlPath string, userID uint, score int) error
	TopScores(urlPath string, limit int) ([]LeaderboardEntry, error)
}

type RedisLeaderboardRepository struct{}

func leaderboardKey(urlPath string) string {
	return "leaderboard:" + urlPath
}

// RecordScore stores the score in the game's sorted set. ZADD GT only moves
// the member up, so the set always holds each user's best score.
func (r *RedisLeaderboardRepository) RecordScore(urlPath string, userID uint, score int) error {
	member := strconv.FormatUint(uint64(userID), 10)
	err := db.Rdb.ZAddGT(ctx, leaderboardKey(urlPath), redis.Z{
		Score:  float64(score),
		Member: member,
	}).Err()
	if err != nil {
		return apperrors.NewAppError(500, "Error updating leaderboard", err)
	}
	return nil
}

func (r *RedisLeaderboardRepository) TopScores(urlPath string, limit int) ([]LeaderboardEntry, error) {
	results, err := db.Rdb.ZRevRangeWithScores(ctx, leaderboardKey(urlPath), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, apperrors.NewAppError(500, "Error getting leaderboard", err)
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, z := range results {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		userID, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Rank:   i + 1,
			UserID: uint(userID),
			Score:  int(z.Score),
		})
	}

	return entries, nil
}
