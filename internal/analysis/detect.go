// Package analysis fuses a sportsbook odds snapshot with a Polymarket price
// snapshot into a ranked list of betting opportunities with Kelly sizes.
package analysis

import (
	"sort"

	"nba-arb-bot/internal/mathutil"
	"nba-arb-bot/internal/odds"
)

// Opportunity is one team's computed divergence between the book line and
// the market price during a single poll. KellySize is the Kelly fraction in
// percentage points rounded to two decimals; it is 0 whenever Wager is
// false. Diff is the unsigned distance between the two American quotes.
type Opportunity struct {
	Team        string
	Wager       bool
	KellySize   float64
	Diff        int
	BookOdds    int
	MarketOdds  int
	MarketPrice float64
}

// ShouldWager applies the divergence rule on raw signed American odds:
// fire when the market quote is greater than the book quote, on either a
// negative or a positive book line. The comparison is deliberately the
// same `>` on both branches, so a book favorite of -150 against a market
// -120 fires, while a book underdog of +120 against a market -122 does
// not. Equal quotes never fire.
func ShouldWager(bookOdds, marketOdds int) bool {
	if bookOdds < 0 && marketOdds > bookOdds {
		return true
	}
	if bookOdds > 0 && marketOdds > bookOdds {
		return true
	}
	return false
}

// Detect walks the book snapshot in input order and emits one Opportunity
// per team that has a parseable moneyline and a matching market price in
// (0,1). Rows that fail any step are dropped silently; a live table always
// carries some suspended or half-rendered rows and one bad cell must not
// abort the cycle. teamFilter, when non-empty, restricts processing to the
// named teams.
//
// The result is sorted by KellySize descending; the sort is stable so
// equal sizes keep their book-snapshot order. Empty inputs return an empty
// slice, never an error.
func Detect(books []BookQuote, markets []MarketQuote, teamFilter []string) []Opportunity {
	filter := make(map[string]bool, len(teamFilter))
	for _, team := range teamFilter {
		filter[team] = true
	}

	opps := make([]Opportunity, 0, len(books))
	for _, q := range books {
		if len(filter) > 0 && !filter[q.Team] {
			continue
		}

		bookOdds, err := odds.ParseMoneyline(q.Moneyline)
		if err != nil {
			continue
		}

		price, ok := marketPrice(q.Team, markets)
		if !ok || price == 0 || price > 1 {
			continue
		}

		marketOdds, err := odds.AmericanFromProbability(price)
		if err != nil {
			continue
		}

		diff := bookOdds - marketOdds
		if diff < 0 {
			diff = -diff
		}

		wager := ShouldWager(bookOdds, marketOdds)
		kellySize := 0.0
		if wager {
			p, err := odds.ProbabilityFromAmerican(bookOdds)
			if err != nil {
				continue
			}
			b := (1.0 - price) / price
			k, err := odds.Kelly(p, b)
			if err != nil {
				continue
			}
			kellySize = mathutil.Round2(100 * k)
		}

		opps = append(opps, Opportunity{
			Team:        q.Team,
			Wager:       wager,
			KellySize:   kellySize,
			Diff:        diff,
			BookOdds:    bookOdds,
			MarketOdds:  marketOdds,
			MarketPrice: price,
		})
	}

	sort.SliceStable(opps, func(i, j int) bool {
		return opps[i].KellySize > opps[j].KellySize
	})

	return opps
}

// Actionable returns only the opportunities the divergence rule fired on,
// preserving order.
func Actionable(opps []Opportunity) []Opportunity {
	out := make([]Opportunity, 0, len(opps))
	for _, opp := range opps {
		if opp.Wager {
			out = append(out, opp)
		}
	}
	return out
}
