// Package performance evaluates recorded wagers against game outcomes:
// running profit and loss curves under different sizing strategies, Sharpe
// ratios, and aggregate reports.
package performance

import (
	"fmt"
	"sort"
	"time"

	"nba-arb-bot/internal/ledger"
	"nba-arb-bot/internal/odds"
	"nba-arb-bot/internal/outcomes"
)

// Row is one analyzable wager: the persisted record joined with its
// effective share price and the resolved game outcome.
type Row struct {
	ledger.Record

	// Price is re-derived from the recorded market odds rather than
	// taken from the price column, so pre-backfill rows analyze the
	// same as current ones.
	Price float64

	// Outcome is 1 when the team won, 0 when it lost.
	Outcome int
}

// Return is the row's per-unit-stake payoff, positive on a win.
func (r Row) Return() float64 {
	return float64(r.Outcome) - r.Price
}

// BuildRows joins ledger records against the outcomes table. Teams on the
// ignore list are dropped; any record whose outcome cannot be resolved
// fails the whole build, since partial analysis silently skews every
// aggregate downstream.
func BuildRows(records []ledger.Record, table outcomes.Table, ignore []string) ([]Row, error) {
	ignored := make(map[string]bool, len(ignore))
	for _, team := range ignore {
		ignored[team] = true
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		if ignored[rec.Team] {
			continue
		}

		price, err := odds.ProbabilityFromAmerican(rec.MarketOdds)
		if err != nil {
			return nil, fmt.Errorf("record %s at %v: %w", rec.Team, rec.Timestamp, err)
		}
		outcome, err := table.Resolve(rec.Time(), rec.Team)
		if err != nil {
			return nil, fmt.Errorf("record at %v: %w", rec.Timestamp, err)
		}

		rows = append(rows, Row{Record: rec, Price: price, Outcome: outcome})
	}
	return rows, nil
}

// Window bounds an analysis slice by time and optionally by team.
type Window struct {
	Start time.Time
	End   time.Time

	// Teams restricts the window to the named teams; empty means all.
	Teams []string
}

func (w Window) contains(r Row) bool {
	ts := r.Timestamp
	if ts < ledger.EpochSeconds(w.Start) || ts > ledger.EpochSeconds(w.End) {
		return false
	}
	if len(w.Teams) == 0 {
		return true
	}
	for _, team := range w.Teams {
		if team == r.Team {
			return true
		}
	}
	return false
}

// FilterWindows keeps rows falling inside any of the windows. No windows
// means no filtering.
func FilterWindows(rows []Row, windows []Window) []Row {
	if len(windows) == 0 {
		return rows
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		for _, w := range windows {
			if w.contains(r) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// PlacedOnly keeps the rows whose wager actually reached the market.
func PlacedOnly(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Status.Success() {
			out = append(out, r)
		}
	}
	return out
}

func sortedByTime(rows []Row) []Row {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})
	return sorted
}
