// Package placer turns detected opportunities into wager attempts against a
// trading venue. The venue itself is an external collaborator; this package
// owns the sizing rule and the pre-trade checks and maps every outcome onto
// a ledger status.
package placer

import (
	"context"
	"errors"

	"nba-arb-bot/internal/analysis"
	"nba-arb-bot/internal/ledger"
)

// Venue errors a Market placer maps onto ledger statuses.
var (
	ErrTeamNotFound        = errors.New("team not found on venue")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSignatureFailed     = errors.New("order signature failed")
)

// Placer places one wager for an opportunity. The returned status is always
// recordable; the error carries the underlying cause when the status is
// StatusException.
type Placer interface {
	Place(ctx context.Context, opp analysis.Opportunity, unit float64) (ledger.WagerStatus, error)
}

// DryRun is the no-venue placer. Every opportunity is acknowledged without
// any venue interaction.
type DryRun struct{}

// Place reports StatusDryRun unconditionally.
func (DryRun) Place(ctx context.Context, opp analysis.Opportunity, unit float64) (ledger.WagerStatus, error) {
	return ledger.StatusDryRun, nil
}

// Venue is the trading surface a Market placer drives. Implementations wrap
// whatever execution channel is available; tests stub it.
type Venue interface {
	// Select prepares an order for team and returns the price currently
	// quoted for it, in dollars per share. Returns ErrTeamNotFound when
	// the team has no open listing.
	Select(ctx context.Context, team string) (float64, error)
	// Buy submits a market order spending amount dollars on the selected
	// team. Returns ErrInsufficientBalance or ErrSignatureFailed when the
	// venue rejects the order.
	Buy(ctx context.Context, team string, amount float64) error
}

// Market places wagers on a Venue, enforcing the sizing rule and the
// pre-trade price check. With DryRun set it runs every check but stops
// short of the buy.
type Market struct {
	Venue  Venue
	DryRun bool
}

// Stake is the dollar amount wagered for an opportunity at the given unit
// size.
func Stake(opp analysis.Opportunity, unit float64) float64 {
	return unit * opp.KellySize * opp.MarketPrice
}

// Cents truncates a dollar price to whole cents.
func Cents(price float64) int {
	return int(price * 100)
}

// Place runs the pre-trade checks and submits the order.
//
// The checks run in the order the statuses are listed: team lookup, minimum
// stake (one share), price drift against the detected quote, then the buy.
func (m *Market) Place(ctx context.Context, opp analysis.Opportunity, unit float64) (ledger.WagerStatus, error) {
	quoted, err := m.Venue.Select(ctx, opp.Team)
	switch {
	case errors.Is(err, ErrTeamNotFound):
		return ledger.StatusTeamNotSelected, nil
	case err != nil:
		return ledger.StatusException, err
	}

	amount := Stake(opp, unit)
	if amount < opp.MarketPrice {
		return ledger.StatusWagerTooSmall, nil
	}

	if Cents(quoted) != Cents(opp.MarketPrice) {
		return ledger.StatusPriceChanged, nil
	}

	if m.DryRun {
		return ledger.StatusDryRun, nil
	}

	err = m.Venue.Buy(ctx, opp.Team, amount)
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return ledger.StatusInsufficientBalance, nil
	case errors.Is(err, ErrSignatureFailed):
		return ledger.StatusSignatureFailed, nil
	case err != nil:
		return ledger.StatusException, err
	}

	return ledger.StatusPlaced, nil
}
