package progress

import (
	"github.com/stretchr/testify/mock"
)

type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) GameExists(gameID uint) (bool, error) {
	args := m.Called(gameID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgressRepository) UpsertProgress(userID, gameID uint, score int) (*GameProgress, error) {
	args := m.Called(userID, gameID, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GameProgress), args.Error(1)
}

func (m *MockProgressRepository) AddUserPoints(userID uint, points int) error {
	args := m.Called(userID, points)
	return args.Error(0)
}

func (m *MockProgressRepository) ListProgress(userID uint) ([]GameProgressEntry, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]GameProgressEntry), args.Error(1)
}

func (m *MockProgressRepository) ListAchievements(userID uint) ([]AchievementEntry, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]AchievementEntry), args.Error(1)
}

func (m *MockProgressRepository) ListAchievementDefs() ([]Achievement, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Achievement), args.Error(1)
}

func (m *MockProgressRepository) GrantAchievement(userID, achievementID uint) error {
	args := m.Called(userID, achievementID)
	return args.Error(0)
}

func (m *MockProgressRepository) FetchUserStats(userID uint) (*UserStatsResponse, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UserStatsResponse), args.Error(1)
}

type MockLeaderboardRepository struct {
	mock.Mock
}

func (m *MockLeaderboardRepository) RecordScore(urlPath string, userID uint, score int) error {
	args := m.Called(urlPath, userID, score)
	return args.Error(0)
}

func (m *MockLeaderboardRepository) TopScores(urlPath string, limit int) ([]LeaderboardEntry, error) {
	args := m.Called(urlPath, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]LeaderboardEntry), args.Error(1)
}
