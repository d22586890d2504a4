package odds

import "math"

// RemoveVig strips the overround from a two-way market proportionally:
// each side keeps its share of the combined implied probability, so the
// results sum to 1. Non-positive inputs return 0, 0.
func RemoveVig(impliedA, impliedB float64) (float64, float64) {
	if impliedA <= 0 || impliedB <= 0 {
		return 0, 0
	}

	total := impliedA + impliedB
	if total <= 0 {
		return 0, 0
	}

	return impliedA / total, impliedB / total
}

// RemoveVigPower strips the overround with the power method: find k such
// that impliedA^k + impliedB^k = 1 and raise both sides to it. Longshots
// get deflated more than favorites, which proportional devigging misses.
// Non-positive inputs return 0, 0.
func RemoveVigPower(impliedA, impliedB float64) (float64, float64) {
	if impliedA <= 0 || impliedB <= 0 {
		return 0, 0
	}

	// Already a fair pair; nothing to strip.
	sum := impliedA + impliedB
	if math.Abs(sum-1.0) < 1e-9 {
		return impliedA, impliedB
	}

	k := findPowerExponent(impliedA, impliedB)

	return math.Pow(impliedA, k), math.Pow(impliedB, k)
}

// findPowerExponent bisects for k with p1^k + p2^k = 1. For 0 < p < 1 a
// higher k shrinks p^k, so an overround pair (sum > 1) lands at k > 1 and
// an underround pair at k < 1.
func findPowerExponent(p1, p2 float64) float64 {
	const (
		tolerance = 1e-9
		maxIters  = 100
	)

	low, high := 0.01, 10.0

	for i := 0; i < maxIters; i++ {
		mid := (low + high) / 2
		currentSum := math.Pow(p1, mid) + math.Pow(p2, mid)

		if math.Abs(currentSum-1.0) < tolerance {
			return mid
		}

		if currentSum > 1 {
			low = mid
		} else {
			high = mid
		}
	}

	return (low + high) / 2
}
