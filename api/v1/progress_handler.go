package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/lcastrov/ArcadeHub/internal/apperrors"
	"github.com/lcastrov/ArcadeHub/internal/progress"
	"github.com/lcastrov/ArcadeHub/internal/user"
)

const INVALID_REQUEST = "invalid request"

var ProgressService *progress.ProgressService

func RegisterProgressRoutes(g *echo.Group) {
	g.GET("/games", GetGameProgressHandler)
	g.POST("/games/:gameId", UpdateGameProgressHandler)
	g.GET("/achievements", GetAchievementsHandler)
	g.GET("/stats", GetStatsHandler)
	g.GET("/leaderboard/:game", GetLeaderboardHandler)
}

func principalID(c echo.Context) (uint, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	claims, ok := token.Claims.(*user.JwtCustomClaims)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return claims.Id, nil
}

// httpError maps service errors to responses. Anything that is not an
// AppError becomes a generic 500 so internal detail never crosses the wire.
func httpError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(appErr.Code, appErr.Message)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
}

func GetGameProgressHandler(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	entries, errList := ProgressService.ListProgress(userID)
	if errList != nil {
		return httpError(errList)
	}
	return c.JSON(http.StatusOK, entries)
}

func UpdateGameProgressHandler(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	gameID, errParse := strconv.ParseUint(c.Param("gameId"), 10, 64)
	if errParse != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Game not found")
	}

	var request progress.ScoreRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}

	record, errSubmit := ProgressService.SubmitScore(userID, uint(gameID), &request)
	if errSubmit != nil {
		return httpError(errSubmit)
	}
	return c.JSON(http.StatusOK, record)
}

func GetAchievementsHandler(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	entries, errList := ProgressService.ListAchievements(userID)
	if errList != nil {
		return httpError(errList)
	}
	return c.JSON(http.StatusOK, entries)
}

func GetStatsHandler(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	stats, errStats := ProgressService.GetStats(userID)
	if errStats != nil {
		return httpError(errStats)
	}
	return c.JSON(http.StatusOK, stats)
}

func GetLeaderboardHandler(c echo.Context) error {
	if _, err := principalID(c); err != nil {
		return err
	}

	game := c.Param("game")
	if game == "" {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}

	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
		}
		limit = parsed
	}

	entries, errBoard := ProgressService.GetLeaderboard(game, limit)
	if errBoard != nil {
		return httpError(errBoard)
	}
	return c.JSON(http.StatusOK, entries)
}
