package api

import (
	"context"
	"fmt"
	"time"
)

const (
	scoreboardRequestsPerMinute = 60
	scoreboardTimeout           = 10 * time.Second
	scoreboardMaxRetries        = 3
)

// Game status codes on the scoreboard feed.
const (
	GameStatusScheduled = 1
	GameStatusLive      = 2
	GameStatusFinal     = 3
)

// ScoreboardClient reads the league's live scoreboard feed.
type ScoreboardClient struct {
	url    string
	client *RateLimitedClient
}

// NewScoreboardClient creates a client for the scoreboard JSON at url.
func NewScoreboardClient(url string) *ScoreboardClient {
	return &ScoreboardClient{
		url:    url,
		client: NewRateLimitedClient(scoreboardRequestsPerMinute, scoreboardTimeout, scoreboardMaxRetries),
	}
}

type scoreboardResponse struct {
	Scoreboard struct {
		GameDate string           `json:"gameDate"`
		Games    []scoreboardGame `json:"games"`
	} `json:"scoreboard"`
}

type scoreboardGame struct {
	GameStatus int            `json:"gameStatus"`
	HomeTeam   scoreboardTeam `json:"homeTeam"`
	AwayTeam   scoreboardTeam `json:"awayTeam"`
}

type scoreboardTeam struct {
	TeamName string `json:"teamName"`
}

// LiveTeams returns the teams playing right now, home before away per
// game.
func (c *ScoreboardClient) LiveTeams(ctx context.Context) ([]string, error) {
	var resp scoreboardResponse
	if err := c.client.GetJSON(ctx, c.url, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching scoreboard: %w", err)
	}

	teams := []string{}
	for _, game := range resp.Scoreboard.Games {
		if game.GameStatus != GameStatusLive {
			continue
		}
		teams = append(teams, game.HomeTeam.TeamName)
		teams = append(teams, game.AwayTeam.TeamName)
	}
	return teams, nil
}
