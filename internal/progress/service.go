package progress

import (
	"log"

	"github.com/lcastrov/ArcadeHub/internal/apperrors"
)

type ProgressService struct {
	repo        ProgressRepository
	leaderboard LeaderboardRepository
}

func NewProgressService(repo ProgressRepository, leaderboard LeaderboardRepository) *ProgressService {
	return &ProgressService{repo: repo, leaderboard: leaderboard}
}

func (s *ProgressService) ListProgress(userID uint) ([]GameProgressEntry, error) {
	return s.repo.ListProgress(userID)
}

// SubmitScore records one accepted play: the atomic upsert first, then the
// points increment. A failure after the upsert leaves the progress row in
// place; points are a display aggregate and are not rolled back. The
// leaderboard update and the achievement pass are best effort and never fail
// the submission.
func (s *ProgressService) SubmitScore(userID, gameID uint, request *ScoreRequest) (*GameProgress, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	exists, errDB := s.repo.GameExists(gameID)
	if errDB != nil {
		return nil, errDB
	}
	if !exists {
		return nil, apperrors.NewAppError(404, "Game not found", nil)
	}

	record, err := s.repo.UpsertProgress(userID, gameID, request.Score)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddUserPoints(userID, request.Score); err != nil {
		return nil, err
	}

	if err := s.leaderboard.RecordScore(record.URLPath, userID, request.Score); err != nil {
		log.Println("Error recording leaderboard score:", err)
	}

	s.awardAchievements(userID, record)

	return record, nil
}

func (s *ProgressService) ListAchievements(userID uint) ([]AchievementEntry, error) {
	return s.repo.ListAchievements(userID)
}

func (s *ProgressService) GetStats(userID uint) (*UserStatsResponse, error) {
	return s.repo.FetchUserStats(userID)
}

func (s *ProgressService) GetLeaderboard(urlPath string, limit int) ([]LeaderboardEntry, error) {
	return s.leaderboard.TopScores(urlPath, limit)
}

// awardAchievements grants every definition whose threshold the user has
// reached. Grants add no points, so the points total stays the exact sum of
// submitted scores.
func (s *ProgressService) awardAchievements(userID uint, record *GameProgress) {
	defs, err := s.repo.ListAchievementDefs()
	if err != nil {
		log.Println("Error loading achievement definitions:", err)
		return
	}

	var stats *UserStatsResponse
	for _, def := range defs {
		earned := false
		switch def.Criteria {
		case CriteriaTimesPlayed:
			earned = record.TimesPlayed >= def.CriteriaValue
		case CriteriaTotalPoints:
			if stats == nil {
				stats, err = s.repo.FetchUserStats(userID)
				if err != nil {
					log.Println("Error loading stats for achievements:", err)
					return
				}
			}
			earned = stats.Points >= def.CriteriaValue
		}

		if !earned {
			continue
		}
		if err := s.repo.GrantAchievement(userID, def.ID); err != nil {
			log.Println("Error granting achievement:", err)
		}
	}
}
