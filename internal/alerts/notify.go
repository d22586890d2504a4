package alerts

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"nba-arb-bot/internal/analysis"
	"nba-arb-bot/internal/ledger"
)

// Sender delivers an alert to an external channel.
type Sender interface {
	Send(ctx context.Context, title, message string) error
}

// Notifier handles alert notifications
type Notifier struct {
	mu         sync.Mutex
	lastAlerts map[string]time.Time // Dedupe alerts
	cooldown   time.Duration        // Minimum time between same alerts
	senders    []Sender
}

// NewNotifier creates a new notifier
func NewNotifier(cooldown time.Duration) *Notifier {
	return &Notifier{
		lastAlerts: make(map[string]time.Time),
		cooldown:   cooldown,
	}
}

// AddSender registers an external channel alerts are forwarded to.
func (n *Notifier) AddSender(s Sender) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.senders = append(n.senders, s)
}

// checkCooldown reports whether an alert for key should be suppressed, and
// records the alert time when it should not.
func (n *Notifier) checkCooldown(key string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if lastTime, ok := n.lastAlerts[key]; ok {
		if time.Since(lastTime) < n.cooldown {
			return true
		}
	}
	n.lastAlerts[key] = time.Now()
	return false
}

func (n *Notifier) send(ctx context.Context, title, message string) {
	n.mu.Lock()
	senders := n.senders
	n.mu.Unlock()

	for _, s := range senders {
		if err := s.Send(ctx, title, message); err != nil {
			log.Printf("ERROR [alerts]: %v", err)
		}
	}
}

// AlertOpportunity sends an alert for a detected edge. Repeat alerts for the
// same team within the cooldown window are suppressed.
func (n *Notifier) AlertOpportunity(ctx context.Context, opp analysis.Opportunity) {
	if n.checkCooldown(opp.Team) {
		return
	}

	msg := fmt.Sprintf("EDGE: %s | book=%+d market=%+d price=$%.2f diff=%d kelly=%.1f",
		opp.Team, opp.BookOdds, opp.MarketOdds, opp.MarketPrice, opp.Diff, opp.KellySize)
	log.Print(msg)
	n.send(ctx, "New edge", msg)
}

// AlertPlacement sends an alert for a placement result. Every placement is
// reported; results are events, not repeating conditions.
func (n *Notifier) AlertPlacement(ctx context.Context, opp analysis.Opportunity, status ledger.WagerStatus, stake float64) {
	msg := fmt.Sprintf("WAGER: %s stake=$%.2f price=$%.2f status=%q",
		opp.Team, stake, opp.MarketPrice, status)
	log.Print(msg)
	n.send(ctx, "Wager placed", msg)
}

// LogCycle logs one engine cycle's tallies
func (n *Notifier) LogCycle(liveTeams, detected, recorded int) {
	log.Printf("Cycle complete: %d live teams, %d edges, %d recorded", liveTeams, detected, recorded)
}

// LogError logs an error
func (n *Notifier) LogError(where string, err error) {
	log.Printf("ERROR [%s]: %v", where, err)
}

// LogStartup logs bot startup
func (n *Notifier) LogStartup(config string) {
	log.Printf("Bot started |%s", config)
}

// CleanupOldAlerts removes stale alert records
func (n *Notifier) CleanupOldAlerts() {
	n.mu.Lock()
	defer n.mu.Unlock()
	cutoff := time.Now().Add(-1 * time.Hour)
	for key, t := range n.lastAlerts {
		if t.Before(cutoff) {
			delete(n.lastAlerts, key)
		}
	}
}
