package analysis

import (
	"strings"

	"nba-arb-bot/internal/teams"
)

// BookQuote is one sportsbook row: the cleaned team name and the raw
// moneyline cell text as scraped. The moneyline stays a string here because
// live tables hold suspended lines, empty cells, and the U+2212 glyph;
// parsing happens inside Detect so a bad cell drops one row, not the batch.
type BookQuote struct {
	Team      string
	Moneyline string
}

// MarketQuote is one Polymarket game listing: both sides' labels and share
// prices. Prices are read directly as probabilities.
type MarketQuote struct {
	AwayTeam  string
	AwayPrice float64
	HomeTeam  string
	HomePrice float64
}

// marketPrice finds the current market price for a full team name by
// matching its Polymarket abbreviation (case-insensitive substring) against
// each listing's side labels, away side first. First listing wins.
func marketPrice(team string, markets []MarketQuote) (float64, bool) {
	abbr, ok := teams.Abbreviation(team)
	if !ok {
		return 0, false
	}
	needle := strings.ToLower(abbr)

	for _, m := range markets {
		if strings.Contains(strings.ToLower(m.AwayTeam), needle) {
			return m.AwayPrice, true
		}
		if strings.Contains(strings.ToLower(m.HomeTeam), needle) {
			return m.HomePrice, true
		}
	}
	return 0, false
}
