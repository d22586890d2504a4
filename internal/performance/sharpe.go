package performance

import (
	"errors"
	"fmt"

	"nba-arb-bot/internal/mathutil"
)

// DefaultRiskFreeRate is the rate Sharpe ratios compare against.
const DefaultRiskFreeRate = 0.046

var (
	ErrTooFewReturns = errors.New("too few returns")
	ErrZeroVariance  = errors.New("returns have zero variance")
)

// KellyReturns is the per-bet payoff series under Kelly sizing.
func KellyReturns(rows []Row) []float64 {
	returns := make([]float64, 0, len(rows))
	for _, r := range rows {
		returns = append(returns, r.KellySize*r.Return())
	}
	return returns
}

// EqualWeightReturns is the per-bet payoff series staking one unit per
// bet.
func EqualWeightReturns(rows []Row) []float64 {
	returns := make([]float64, 0, len(rows))
	for _, r := range rows {
		returns = append(returns, r.Return())
	}
	return returns
}

// SharpeRatio computes (mean - riskFree) / sample standard deviation over
// a return series. Series too short or too flat to carry a meaningful
// ratio error out rather than returning 0 or an infinity.
func SharpeRatio(returns []float64, riskFree float64) (float64, error) {
	if len(returns) < 2 {
		return 0, fmt.Errorf("%w: have %d, need at least 2", ErrTooFewReturns, len(returns))
	}
	sd := mathutil.SampleStdDev(returns)
	if sd == 0 {
		return 0, ErrZeroVariance
	}
	return (mathutil.Mean(returns) - riskFree) / sd, nil
}
