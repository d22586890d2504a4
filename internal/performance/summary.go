package performance

import (
	"errors"
	"fmt"
	"sort"

	"nba-arb-bot/internal/outcomes"
)

// ErrNoRows means there is nothing to summarize.
var ErrNoRows = errors.New("no rows to analyze")

// StrategyStats aggregates one strategy's results over a row set.
type StrategyStats struct {
	Profit float64
	Risked float64
	ROI    float64
	Sharpe float64
}

// Summary is the printed report of the analyze command.
type Summary struct {
	N        int
	Wins     int
	Accuracy float64
	Equal    StrategyStats
	Kelly    StrategyStats
}

// Summarize aggregates the rows under equal-weight and Kelly sizing.
// Equal weight risks one unit per bet; Kelly risks stake times price, the
// amount actually paid for the shares.
func Summarize(rows []Row, riskFree float64) (Summary, error) {
	if len(rows) == 0 {
		return Summary{}, ErrNoRows
	}

	s := Summary{N: len(rows)}
	var priceSum, kellyWins, kellyCost float64
	for _, r := range rows {
		s.Wins += r.Outcome
		priceSum += r.Price
		if r.Outcome == 1 {
			kellyWins += r.KellySize
		}
		kellyCost += r.KellySize * r.Price
	}
	s.Accuracy = float64(s.Wins) / float64(s.N)

	s.Equal.Profit = float64(s.Wins) - priceSum
	s.Equal.Risked = float64(s.N)
	s.Equal.ROI = s.Equal.Profit / s.Equal.Risked

	s.Kelly.Profit = kellyWins - kellyCost
	s.Kelly.Risked = kellyCost
	if s.Kelly.Risked != 0 {
		s.Kelly.ROI = s.Kelly.Profit / s.Kelly.Risked
	}

	equalSharpe, err := SharpeRatio(EqualWeightReturns(rows), riskFree)
	if err != nil {
		return Summary{}, fmt.Errorf("equal weight sharpe: %w", err)
	}
	kellySharpe, err := SharpeRatio(KellyReturns(rows), riskFree)
	if err != nil {
		return Summary{}, fmt.Errorf("kelly sharpe: %w", err)
	}
	s.Equal.Sharpe = equalSharpe
	s.Kelly.Sharpe = kellySharpe

	return s, nil
}

// DayRisk is one row of the per-day exposure table.
type DayRisk struct {
	Date string
	Risk float64
	Bets int
}

// RiskByDay groups rows by calendar day and totals the amount paid for
// shares, scaled by the stake unit. Days come back in ascending date
// order.
func RiskByDay(rows []Row, unit float64) []DayRisk {
	byDay := make(map[string]*DayRisk)
	for _, r := range rows {
		key := outcomes.DateKey(r.Time())
		day, ok := byDay[key]
		if !ok {
			day = &DayRisk{Date: key}
			byDay[key] = day
		}
		day.Risk += r.KellySize * r.Price * unit
		day.Bets++
	}

	out := make([]DayRisk, 0, len(byDay))
	for _, day := range byDay {
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
