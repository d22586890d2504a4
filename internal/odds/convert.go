package odds

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrZeroOdds rejects a moneyline of 0; American odds are never quoted at zero.
	ErrZeroOdds = errors.New("american odds cannot be zero")

	// ErrProbabilityRange rejects probabilities outside the open interval (0, 1).
	ErrProbabilityRange = errors.New("probability out of range")

	// ErrNoPayout rejects a non-positive net-odds payout in Kelly sizing.
	ErrNoPayout = errors.New("net odds must be positive")
)

// ProbabilityFromAmerican converts American odds to implied probability
// Example: -150 → 0.6 (60%), +150 → 0.4 (40%)
func ProbabilityFromAmerican(moneyline int) (float64, error) {
	if moneyline == 0 {
		return 0, ErrZeroOdds
	}

	if moneyline > 0 {
		// Underdog: probability = 100 / (odds + 100)
		return 100.0 / (float64(moneyline) + 100.0), nil
	}
	// Favorite: probability = |odds| / (|odds| + 100)
	return math.Abs(float64(moneyline)) / (math.Abs(float64(moneyline)) + 100.0), nil
}

// AmericanFromProbability converts an implied probability to American odds.
// Probabilities of 0.5 and above quote as a favorite (negative line),
// below 0.5 as an underdog (positive line).
//
// The result is rounded to the nearest whole odds point with halves going
// away from zero, so converting back with ProbabilityFromAmerican is lossy:
// expect the round trip to land within one odds point (about 0.01 in
// probability), not exactly on the input.
func AmericanFromProbability(p float64) (int, error) {
	if !(p > 0 && p < 1) {
		return 0, fmt.Errorf("%w: %v must be strictly between 0 and 1", ErrProbabilityRange, p)
	}

	if p >= 0.5 {
		// Favorite: negative odds
		return int(math.Round(-100.0 * (p / (1.0 - p)))), nil
	}
	// Underdog: positive odds
	return int(math.Round(100.0 * ((1.0 - p) / p))), nil
}
