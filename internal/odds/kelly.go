package odds

import (
	"fmt"
	"math"
)

// Kelly computes the Kelly criterion stake as a fraction of bankroll.
// p is the bettor's win probability and b the net odds received per unit
// staked (a 2-to-1 payout → b = 2). The edge-free case p ≤ 1/(1+b) clamps
// to 0 rather than going negative; there is no laying side in this market.
func Kelly(p, b float64) (float64, error) {
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: win probability %v", ErrProbabilityRange, p)
	}
	if b <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrNoPayout, b)
	}

	return math.Max(0, p-(1.0-p)/b), nil
}
