package placer

import (
	"context"
	"errors"
	"testing"

	"nba-arb-bot/internal/analysis"
	"nba-arb-bot/internal/ledger"
)

type stubVenue struct {
	quoted    float64
	selectErr error
	buyErr    error

	boughtTeam   string
	boughtAmount float64
	buys         int
}

func (v *stubVenue) Select(ctx context.Context, team string) (float64, error) {
	if v.selectErr != nil {
		return 0, v.selectErr
	}
	return v.quoted, nil
}

func (v *stubVenue) Buy(ctx context.Context, team string, amount float64) error {
	v.buys++
	v.boughtTeam = team
	v.boughtAmount = amount
	return v.buyErr
}

func opp(kellySize, price float64) analysis.Opportunity {
	return analysis.Opportunity{
		Team:        "Denver Nuggets",
		Wager:       true,
		KellySize:   kellySize,
		BookOdds:    -150,
		MarketOdds:  -120,
		MarketPrice: price,
	}
}

func TestMarketPlace(t *testing.T) {
	errVenueDown := errors.New("venue down")

	tests := []struct {
		name       string
		venue      stubVenue
		opp        analysis.Opportunity
		unit       float64
		dryRun     bool
		wantStatus ledger.WagerStatus
		wantErr    error
		wantBuys   int
	}{
		{
			name:       "placed",
			venue:      stubVenue{quoted: 0.5},
			opp:        opp(8, 0.5),
			unit:       0.25,
			wantStatus: ledger.StatusPlaced,
			wantBuys:   1,
		},
		{
			name:       "team not listed",
			venue:      stubVenue{selectErr: ErrTeamNotFound},
			opp:        opp(8, 0.5),
			unit:       0.25,
			wantStatus: ledger.StatusTeamNotSelected,
		},
		{
			name:       "stake below one share",
			venue:      stubVenue{quoted: 0.5},
			opp:        opp(1, 0.5),
			unit:       0.25,
			wantStatus: ledger.StatusWagerTooSmall,
		},
		{
			name:       "price drifted",
			venue:      stubVenue{quoted: 0.52},
			opp:        opp(8, 0.5),
			unit:       0.25,
			wantStatus: ledger.StatusPriceChanged,
		},
		{
			name:       "sub-cent drift tolerated",
			venue:      stubVenue{quoted: 0.509},
			opp:        opp(8, 0.505),
			unit:       0.25,
			wantStatus: ledger.StatusPlaced,
			wantBuys:   1,
		},
		{
			name:       "dry run stops before buy",
			venue:      stubVenue{quoted: 0.5},
			opp:        opp(8, 0.5),
			unit:       0.25,
			dryRun:     true,
			wantStatus: ledger.StatusDryRun,
		},
		{
			name:       "insufficient balance",
			venue:      stubVenue{quoted: 0.5, buyErr: ErrInsufficientBalance},
			opp:        opp(8, 0.5),
			unit:       0.25,
			wantStatus: ledger.StatusInsufficientBalance,
			wantBuys:   1,
		},
		{
			name:       "signature failed",
			venue:      stubVenue{quoted: 0.5, buyErr: ErrSignatureFailed},
			opp:        opp(8, 0.5),
			unit:       0.25,
			wantStatus: ledger.StatusSignatureFailed,
			wantBuys:   1,
		},
		{
			name:       "select failure surfaces",
			venue:      stubVenue{selectErr: errVenueDown},
			opp:        opp(8, 0.5),
			unit:       0.25,
			wantStatus: ledger.StatusException,
			wantErr:    errVenueDown,
		},
		{
			name:       "buy failure surfaces",
			venue:      stubVenue{quoted: 0.5, buyErr: errVenueDown},
			opp:        opp(8, 0.5),
			unit:       0.25,
			wantStatus: ledger.StatusException,
			wantErr:    errVenueDown,
			wantBuys:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Market{Venue: &tt.venue, DryRun: tt.dryRun}
			status, err := m.Place(context.Background(), tt.opp, tt.unit)
			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.venue.buys != tt.wantBuys {
				t.Errorf("buys = %d, want %d", tt.venue.buys, tt.wantBuys)
			}
		})
	}
}

func TestMarketPlaceStakesCorrectAmount(t *testing.T) {
	venue := &stubVenue{quoted: 0.5}
	m := &Market{Venue: venue}

	status, err := m.Place(context.Background(), opp(8, 0.5), 0.25)
	if err != nil || status != ledger.StatusPlaced {
		t.Fatalf("Place = %q, %v", status, err)
	}
	if venue.boughtTeam != "Denver Nuggets" {
		t.Errorf("bought team = %q", venue.boughtTeam)
	}
	if venue.boughtAmount != 1.0 {
		t.Errorf("bought amount = %v, want 1.0", venue.boughtAmount)
	}
}

func TestStake(t *testing.T) {
	tests := []struct {
		kellySize, price, unit, want float64
	}{
		{8, 0.5, 0.25, 1.0},
		{4, 0.5, 0.25, 0.5},
		{10, 0.25, 1.0, 2.5},
		{0, 0.5, 0.25, 0},
	}
	for _, tt := range tests {
		if got := Stake(opp(tt.kellySize, tt.price), tt.unit); got != tt.want {
			t.Errorf("Stake(ks=%v, price=%v, unit=%v) = %v, want %v",
				tt.kellySize, tt.price, tt.unit, got, tt.want)
		}
	}
}

func TestCents(t *testing.T) {
	tests := []struct {
		price float64
		want  int
	}{
		{0.5, 50},
		{0.25, 25},
		{0.75, 75},
		{0.999, 99},
		{0.109, 10},
	}
	for _, tt := range tests {
		if got := Cents(tt.price); got != tt.want {
			t.Errorf("Cents(%v) = %d, want %d", tt.price, got, tt.want)
		}
	}
}

func TestDryRunPlacer(t *testing.T) {
	status, err := DryRun{}.Place(context.Background(), opp(8, 0.5), 0.25)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if status != ledger.StatusDryRun {
		t.Errorf("status = %q, want %q", status, ledger.StatusDryRun)
	}
}
