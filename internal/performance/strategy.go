package performance

import (
	"fmt"
	"math"
)

// Strategy sizes a stake from one analyzable row.
type Strategy struct {
	Name  string
	Stake func(Row) float64
}

// StockStrategies returns the standard comparison set.
func StockStrategies() []Strategy {
	return []Strategy{
		{Name: "Kelly", Stake: func(r Row) float64 { return r.KellySize }},
		{Name: "Half Kelly", Stake: func(r Row) float64 { return r.KellySize * 0.5 }},
		{Name: "Equal Weight", Stake: func(Row) float64 { return 1 }},
		CappedKelly(5),
	}
}

// CappedKelly sizes at the Kelly stake clamped to the given cap.
func CappedKelly(cap float64) Strategy {
	name := fmt.Sprintf("Kelly Cap %g", cap)
	if math.IsInf(cap, 1) {
		name = "Kelly Uncapped"
	}
	return Strategy{
		Name: name,
		Stake: func(r Row) float64 {
			return math.Min(r.KellySize, cap)
		},
	}
}

// KellyCaps is the cap grid swept by CapSweep. The infinite entry is the
// uncapped baseline.
var KellyCaps = []float64{1, 2, 5, 10, 20, 30, math.Inf(1)}

// Simulate runs each strategy over the rows in timestamp order and
// returns its running profit and loss curve, one point per bet. A winning
// share pays out the stake; every bet costs stake times price.
func Simulate(rows []Row, strategies []Strategy) map[string][]float64 {
	sorted := sortedByTime(rows)

	curves := make(map[string][]float64, len(strategies))
	for _, strat := range strategies {
		running := 0.0
		curve := make([]float64, 0, len(sorted))
		for _, r := range sorted {
			stake := strat.Stake(r)
			if r.Outcome == 1 {
				running += stake
			}
			running -= stake * r.Price
			curve = append(curve, running)
		}
		curves[strat.Name] = curve
	}
	return curves
}

// CapSweep simulates capped Kelly sizing across the whole cap grid.
func CapSweep(rows []Row) map[string][]float64 {
	strategies := make([]Strategy, 0, len(KellyCaps))
	for _, cap := range KellyCaps {
		strategies = append(strategies, CappedKelly(cap))
	}
	return Simulate(rows, strategies)
}
