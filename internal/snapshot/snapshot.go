// Package snapshot reads book and market quotes from JSON files dropped by
// external scrapers. It backs the engine when no live market API is
// configured: each read re-opens the file, so a scraper overwriting the
// snapshot is picked up on the next cycle without coordination.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"nba-arb-bot/internal/analysis"
)

type bookRow struct {
	Team      string `json:"team"`
	Moneyline string `json:"moneyline"`
}

type marketRow struct {
	AwayTeam  string  `json:"away_team"`
	AwayPrice float64 `json:"away_price"`
	HomeTeam  string  `json:"home_team"`
	HomePrice float64 `json:"home_price"`
}

// BookFile serves sportsbook quotes from a JSON snapshot file.
type BookFile struct {
	path string
}

// NewBookFile returns a book source reading from path.
func NewBookFile(path string) *BookFile {
	return &BookFile{path: path}
}

// BookQuotes re-reads the snapshot and returns its rows.
func (f *BookFile) BookQuotes(ctx context.Context) ([]analysis.BookQuote, error) {
	var rows []bookRow
	if err := readJSON(ctx, f.path, &rows); err != nil {
		return nil, fmt.Errorf("reading book snapshot: %w", err)
	}
	quotes := make([]analysis.BookQuote, len(rows))
	for i, r := range rows {
		quotes[i] = analysis.BookQuote{Team: r.Team, Moneyline: r.Moneyline}
	}
	return quotes, nil
}

// Refresh is a no-op. The file is re-read on every BookQuotes call.
func (f *BookFile) Refresh(ctx context.Context) error {
	return nil
}

// MarketFile serves market quotes from a JSON snapshot file.
type MarketFile struct {
	path string
}

// NewMarketFile returns a market source reading from path.
func NewMarketFile(path string) *MarketFile {
	return &MarketFile{path: path}
}

// MarketQuotes re-reads the snapshot and returns its rows.
func (f *MarketFile) MarketQuotes(ctx context.Context) ([]analysis.MarketQuote, error) {
	var rows []marketRow
	if err := readJSON(ctx, f.path, &rows); err != nil {
		return nil, fmt.Errorf("reading market snapshot: %w", err)
	}
	quotes := make([]analysis.MarketQuote, len(rows))
	for i, r := range rows {
		quotes[i] = analysis.MarketQuote{
			AwayTeam:  r.AwayTeam,
			AwayPrice: r.AwayPrice,
			HomeTeam:  r.HomeTeam,
			HomePrice: r.HomePrice,
		}
	}
	return quotes, nil
}

// Refresh is a no-op. The file is re-read on every MarketQuotes call.
func (f *MarketFile) Refresh(ctx context.Context) error {
	return nil
}

// WriteBook writes quotes to path in the snapshot format.
func WriteBook(path string, quotes []analysis.BookQuote) error {
	rows := make([]bookRow, len(quotes))
	for i, q := range quotes {
		rows[i] = bookRow{Team: q.Team, Moneyline: q.Moneyline}
	}
	return writeJSON(path, rows)
}

// WriteMarket writes quotes to path in the snapshot format.
func WriteMarket(path string, quotes []analysis.MarketQuote) error {
	rows := make([]marketRow, len(quotes))
	for i, q := range quotes {
		rows[i] = marketRow{
			AwayTeam:  q.AwayTeam,
			AwayPrice: q.AwayPrice,
			HomeTeam:  q.HomeTeam,
			HomePrice: q.HomePrice,
		}
	}
	return writeJSON(path, rows)
}

func readJSON(ctx context.Context, path string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
