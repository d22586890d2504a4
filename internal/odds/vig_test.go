package odds

import (
	"math"
	"testing"
)

func TestRemoveVig(t *testing.T) {
	tests := []struct {
		name      string
		impliedA  float64
		impliedB  float64
		expectedA float64
		expectedB float64
		delta     float64
	}{
		{
			name:      "Standard -110/-110",
			impliedA:  0.5238, // -110
			impliedB:  0.5238, // -110
			expectedA: 0.5,
			expectedB: 0.5,
			delta:     0.001,
		},
		{
			name:      "Favorite -150/+130",
			impliedA:  0.6,    // -150
			impliedB:  0.4348, // +130
			expectedA: 0.58,
			expectedB: 0.42,
			delta:     0.01,
		},
		{
			name:      "Heavy favorite -300/+250",
			impliedA:  0.75,   // -300
			impliedB:  0.2857, // +250
			expectedA: 0.724,
			expectedB: 0.276,
			delta:     0.01,
		},
		{
			name:      "Market pair with a two-cent spread",
			impliedA:  0.55,
			impliedB:  0.47,
			expectedA: 0.539,
			expectedB: 0.461,
			delta:     0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resultA, resultB := RemoveVig(tt.impliedA, tt.impliedB)

			if math.Abs(resultA-tt.expectedA) > tt.delta {
				t.Errorf("RemoveVig probA = %v, want %v", resultA, tt.expectedA)
			}
			if math.Abs(resultB-tt.expectedB) > tt.delta {
				t.Errorf("RemoveVig probB = %v, want %v", resultB, tt.expectedB)
			}

			// Verify they sum to 1
			sum := resultA + resultB
			if math.Abs(sum-1.0) > 0.001 {
				t.Errorf("RemoveVig probs should sum to 1, got %v", sum)
			}
		})
	}
}

func TestRemoveVigPower(t *testing.T) {
	tests := []struct {
		name     string
		impliedA float64
		impliedB float64
	}{
		{"Standard -110/-110", 0.5238, 0.5238},
		{"Favorite -150/+130", 0.6, 0.4348},
		{"Heavy favorite -300/+250", 0.75, 0.2857},
		{"Underround pair", 0.48, 0.47},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resultA, resultB := RemoveVigPower(tt.impliedA, tt.impliedB)

			sum := resultA + resultB
			if math.Abs(sum-1.0) > 1e-6 {
				t.Errorf("RemoveVigPower probs should sum to 1, got %v", sum)
			}
			if (tt.impliedA > tt.impliedB) != (resultA > resultB) {
				t.Errorf("RemoveVigPower reordered the sides: %v, %v", resultA, resultB)
			}
		})
	}
}

func TestRemoveVigPowerDeflatesLongshotMore(t *testing.T) {
	// -300/+250 overround pair: the power method should hand the favorite
	// a bigger share than proportional devigging does.
	propFav, _ := RemoveVig(0.75, 0.2857)
	powerFav, _ := RemoveVigPower(0.75, 0.2857)

	if powerFav <= propFav {
		t.Errorf("power favorite %v should exceed proportional favorite %v", powerFav, propFav)
	}
}

func TestRemoveVigPowerFairPairUnchanged(t *testing.T) {
	a, b := RemoveVigPower(0.6, 0.4)
	if a != 0.6 || b != 0.4 {
		t.Errorf("fair pair should pass through, got %v, %v", a, b)
	}
}

func TestRemoveVigEdgeCases(t *testing.T) {
	// Test invalid inputs
	a, b := RemoveVig(0, 0.5)
	if a != 0 || b != 0 {
		t.Error("RemoveVig should return 0,0 for zero input")
	}

	a, b = RemoveVig(-0.5, 0.5)
	if a != 0 || b != 0 {
		t.Error("RemoveVig should return 0,0 for negative input")
	}

	a, b = RemoveVigPower(0.5, 0)
	if a != 0 || b != 0 {
		t.Error("RemoveVigPower should return 0,0 for zero input")
	}
}
