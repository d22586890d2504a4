package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nba-arb-bot/internal/outcomes"
)

const (
	resultsRequestsPerMinute = 600
	resultsTimeout           = 10 * time.Second
	resultsMaxRetries        = 3
)

// ResultsClient fetches final scores from the results provider.
type ResultsClient struct {
	baseURL string
	apiKey  string
	client  *RateLimitedClient
}

// NewResultsClient creates a client for the results API root, e.g.
// "https://api.balldontlie.io/v1".
func NewResultsClient(baseURL, apiKey string) *ResultsClient {
	return &ResultsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  NewRateLimitedClient(resultsRequestsPerMinute, resultsTimeout, resultsMaxRetries),
	}
}

type gamesResponse struct {
	Data []resultGame `json:"data"`
	Meta struct {
		NextCursor int `json:"next_cursor"`
		PerPage    int `json:"per_page"`
	} `json:"meta"`
}

type resultGame struct {
	Status       string     `json:"status"`
	HomeTeam     resultTeam `json:"home_team"`
	VisitorTeam  resultTeam `json:"visitor_team"`
	HomeScore    int        `json:"home_team_score"`
	VisitorScore int        `json:"visitor_team_score"`
}

type resultTeam struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

// Slate holds one day's games: binary results for finished ones and the
// matchups still pending.
type Slate struct {
	Date    time.Time
	Results outcomes.Results
	Pending []string
}

// Slate fetches the given day's games, handling pagination, and reduces
// finished ones to per-team binary results.
func (c *ResultsClient) Slate(ctx context.Context, day time.Time) (Slate, error) {
	dateStr := day.Format("2006-01-02")
	headers := map[string]string{
		"Authorization": c.apiKey,
	}

	slate := Slate{Date: day, Results: outcomes.Results{}}
	cursor := 0
	for {
		url := fmt.Sprintf("%s/games?dates[]=%s", c.baseURL, dateStr)
		if cursor > 0 {
			url = fmt.Sprintf("%s&cursor=%d", url, cursor)
		}

		var resp gamesResponse
		if err := c.client.GetJSON(ctx, url, headers, &resp); err != nil {
			return Slate{}, fmt.Errorf("fetching games for %s: %w", dateStr, err)
		}

		for _, game := range resp.Data {
			if game.Status != "Final" {
				slate.Pending = append(slate.Pending, fmt.Sprintf("%s @ %s", game.VisitorTeam.Name, game.HomeTeam.Name))
				continue
			}
			homeWon := game.HomeScore > game.VisitorScore
			slate.Results[game.HomeTeam.Name] = btoi(homeWon)
			slate.Results[game.VisitorTeam.Name] = btoi(!homeWon)
		}

		if resp.Meta.NextCursor == 0 {
			break
		}
		cursor = resp.Meta.NextCursor
	}

	return slate, nil
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
