package ledger

import (
	"sort"

	"nba-arb-bot/internal/analysis"
)

// LatestPerTeam reduces history to the most recent record per team by
// timestamp. Equal timestamps resolve to the later file position, matching
// a stable ascending sort followed by last-one-wins.
func LatestPerTeam(history []Record) map[string]Record {
	sorted := make([]Record, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	latest := make(map[string]Record, len(sorted))
	for _, r := range sorted {
		latest[r.Team] = r
	}
	return latest
}

// FilterNew drops opportunities whose team's latest recorded wager carries
// the same book odds and the identical market price, so an unchanged
// market is not bet twice. The price comparison is exact float equality on
// purpose; the store writes prices with round-trip precision to keep it
// meaningful. Order is preserved and teams without history always pass.
func FilterNew(opps []analysis.Opportunity, history []Record) []analysis.Opportunity {
	latest := LatestPerTeam(history)

	out := make([]analysis.Opportunity, 0, len(opps))
	for _, opp := range opps {
		prev, ok := latest[opp.Team]
		if ok && prev.BookOdds == opp.BookOdds && prev.MarketPrice == opp.MarketPrice {
			continue
		}
		out = append(out, opp)
	}
	return out
}
