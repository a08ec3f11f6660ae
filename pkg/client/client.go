package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client wraps the progress API. BaseURL includes the version prefix, e.g.
// http://localhost:8080/api/v1.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) doRequest(method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Message: "error encoding request"}
		}
		reader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return &RequestError{Message: "error building request"}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &RequestError{Message: "could not reach server"}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Message: "error reading response"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := "something went wrong"
		var failure struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &failure); err == nil && failure.Message != "" {
			message = failure.Message
		}
		return &RequestError{Status: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &RequestError{Message: "error decoding response"}
	}
	return nil
}

func (c *Client) GetGameProgress() ([]ProgressRecord, error) {
	records := []ProgressRecord{}
	if err := c.doRequest(http.MethodGet, "/progress/games", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) UpdateGameProgress(gameID uint, score int) (*ProgressRecord, error) {
	var record ProgressRecord
	path := fmt.Sprintf("/progress/games/%d", gameID)
	if err := c.doRequest(http.MethodPost, path, &scoreRequest{Score: score}, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) GetAchievements() ([]Achievement, error) {
	achievements := []Achievement{}
	if err := c.doRequest(http.MethodGet, "/progress/achievements", nil, &achievements); err != nil {
		return nil, err
	}
	return achievements, nil
}

func (c *Client) GetStats() (*Stats, error) {
	var stats Stats
	if err := c.doRequest(http.MethodGet, "/progress/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) GetLeaderboard(game string, limit int) ([]LeaderboardEntry, error) {
	entries := []LeaderboardEntry{}
	path := fmt.Sprintf("/progress/leaderboard/%s?limit=%d", game, limit)
	if err := c.doRequest(http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
