package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nba-arb-bot/internal/analysis"
)

const (
	gammaRequestsPerMinute = 60
	gammaTimeout           = 15 * time.Second
	gammaMaxRetries        = 3
	gammaPageLimit         = 100
	gammaTagSlug           = "nba"
)

// GammaClient reads game markets from the Polymarket gamma API.
type GammaClient struct {
	baseURL string
	client  *RateLimitedClient
}

// NewGammaClient creates a client for the gamma API root, e.g.
// "https://gamma-api.polymarket.com".
func NewGammaClient(baseURL string) *GammaClient {
	return &GammaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  NewRateLimitedClient(gammaRequestsPerMinute, gammaTimeout, gammaMaxRetries),
	}
}

type gammaEvent struct {
	Slug    string        `json:"slug"`
	Closed  bool          `json:"closed"`
	Markets []gammaMarket `json:"markets"`
}

// The gamma API encodes outcome arrays as JSON strings inside the JSON
// document, e.g. "[\"Heat\", \"Lakers\"]".
type gammaMarket struct {
	Outcomes      string `json:"outcomes"`
	OutcomePrices string `json:"outcomePrices"`
	Closed        bool   `json:"closed"`
}

// Markets returns the moneyline quotes for the given day's games, keyed
// away side first, matching the order the markets list outcomes in.
func (c *GammaClient) Markets(ctx context.Context, day time.Time) ([]analysis.MarketQuote, error) {
	params := url.Values{}
	params.Set("closed", "false")
	params.Set("tag_slug", gammaTagSlug)
	params.Set("limit", strconv.Itoa(gammaPageLimit))

	var events []gammaEvent
	reqURL := c.baseURL + "/events?" + params.Encode()
	if err := c.client.GetJSON(ctx, reqURL, nil, &events); err != nil {
		return nil, fmt.Errorf("fetching gamma events: %w", err)
	}

	dateKey := day.Format("2006-01-02")
	quotes := make([]analysis.MarketQuote, 0, len(events))
	for _, event := range events {
		if event.Closed || !strings.Contains(event.Slug, dateKey) {
			continue
		}
		if len(event.Markets) == 0 {
			continue
		}

		quote, err := event.Markets[0].quote()
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", event.Slug, err)
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

// MarketQuotes returns today's quotes, the shape the engine polls a market
// source with.
func (c *GammaClient) MarketQuotes(ctx context.Context) ([]analysis.MarketQuote, error) {
	return c.Markets(ctx, time.Now())
}

// Refresh is a no-op. Every MarketQuotes call hits the live API.
func (c *GammaClient) Refresh(ctx context.Context) error {
	return nil
}

func (m gammaMarket) quote() (analysis.MarketQuote, error) {
	outcomes, err := parseJSONStringArray(m.Outcomes)
	if err != nil {
		return analysis.MarketQuote{}, fmt.Errorf("outcomes: %w", err)
	}
	prices, err := parseJSONStringArray(m.OutcomePrices)
	if err != nil {
		return analysis.MarketQuote{}, fmt.Errorf("outcome prices: %w", err)
	}
	if len(outcomes) < 2 || len(prices) < 2 {
		return analysis.MarketQuote{}, fmt.Errorf("market lists %d outcomes and %d prices, need 2", len(outcomes), len(prices))
	}

	away, err := strconv.ParseFloat(prices[0], 64)
	if err != nil {
		return analysis.MarketQuote{}, fmt.Errorf("away price %q: %w", prices[0], err)
	}
	home, err := strconv.ParseFloat(prices[1], 64)
	if err != nil {
		return analysis.MarketQuote{}, fmt.Errorf("home price %q: %w", prices[1], err)
	}

	return analysis.MarketQuote{
		AwayTeam:  outcomes[0],
		AwayPrice: away,
		HomeTeam:  outcomes[1],
		HomePrice: home,
	}, nil
}

// parseJSONStringArray decodes the gamma API's string-encoded arrays.
func parseJSONStringArray(raw string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("array %q: %w", raw, err)
	}
	return out, nil
}
