// Package ledger persists wager records to the append-only CSV the
// analysis tooling consumes, and filters fresh opportunities against the
// recorded history.
package ledger

import (
	"math"
	"time"

	"nba-arb-bot/internal/analysis"
)

// WagerStatus is the placement collaborator's final word on one record.
// The string values are the persisted ledger vocabulary.
type WagerStatus string

const (
	StatusPlaced              WagerStatus = "Placed"
	StatusTeamNotSelected     WagerStatus = "Team not selected"
	StatusWagerTooSmall       WagerStatus = "Wager too small"
	StatusPriceChanged        WagerStatus = "Price changed"
	StatusDryRun              WagerStatus = "Dry run"
	StatusInsufficientBalance WagerStatus = "Insufficient balance"
	StatusSignatureFailed     WagerStatus = "Signature failed"
	StatusException           WagerStatus = "Exception"
)

// Success reports whether the wager actually reached the market.
func (s WagerStatus) Success() bool {
	return s == StatusPlaced
}

// Valid reports whether s belongs to the closed status set.
func (s WagerStatus) Valid() bool {
	switch s {
	case StatusPlaced, StatusTeamNotSelected, StatusWagerTooSmall,
		StatusPriceChanged, StatusDryRun, StatusInsufficientBalance,
		StatusSignatureFailed, StatusException:
		return true
	}
	return false
}

// Record is one persisted ledger row: the opportunity, when it was seen
// (epoch seconds, fractional), and what the placer did with it. Records
// are append-only and never mutated.
type Record struct {
	analysis.Opportunity
	Timestamp float64
	Status    WagerStatus
}

// Time converts the record's epoch-seconds timestamp back to wall time.
func (r Record) Time() time.Time {
	sec, frac := math.Modf(r.Timestamp)
	return time.Unix(int64(sec), int64(frac*1e9))
}

// EpochSeconds renders a wall time as the ledger's fractional-seconds
// timestamp format.
func EpochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
