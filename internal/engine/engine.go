package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"nba-arb-bot/internal/alerts"
	"nba-arb-bot/internal/analysis"
	"nba-arb-bot/internal/attempts"
	"nba-arb-bot/internal/config"
	"nba-arb-bot/internal/ledger"
	"nba-arb-bot/internal/placer"
)

// LiveSource reports which teams are playing right now.
type LiveSource interface {
	LiveTeams(ctx context.Context) ([]string, error)
}

// BookSource supplies the current sportsbook quotes.
type BookSource interface {
	BookQuotes(ctx context.Context) ([]analysis.BookQuote, error)
	Refresh(ctx context.Context) error
}

// MarketSource supplies the current prediction-market quotes.
type MarketSource interface {
	MarketQuotes(ctx context.Context) ([]analysis.MarketQuote, error)
	Refresh(ctx context.Context) error
}

// Status is a snapshot of loop progress served by the health endpoint.
type Status struct {
	Cycles    int       `json:"cycles"`
	LastCycle time.Time `json:"last_cycle"`
	LastError string    `json:"last_error,omitempty"`
	LiveTeams int       `json:"live_teams"`
	Recorded  int       `json:"recorded"`
}

// Engine is the main orchestrator that polls for live games, detects odds
// divergences, and records wagers.
type Engine struct {
	live     LiveSource
	books    BookSource
	markets  MarketSource
	store    *ledger.Store
	placer   placer.Placer
	db       *attempts.DB
	notifier *alerts.Notifier
	cfg      config.Config
	logger   *slog.Logger

	refreshCount int
	noGamesCount int

	mu     sync.Mutex
	status Status
}

// New creates a new Engine with all dependencies. The attempts DB may be
// nil; placement attempts are then only written to the ledger.
func New(
	live LiveSource,
	books BookSource,
	markets MarketSource,
	store *ledger.Store,
	pl placer.Placer,
	db *attempts.DB,
	notifier *alerts.Notifier,
	cfg config.Config,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		live:     live,
		books:    books,
		markets:  markets,
		store:    store,
		placer:   pl,
		db:       db,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Status returns a copy of the current loop status.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Run starts the main polling loop. The first cycle runs immediately; after
// that the loop ticks on the refresh interval. It blocks until ctx is
// cancelled or the no-games timeout is reached, and returns nil on either.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.store.EnsureFile(); err != nil {
		return fmt.Errorf("preparing ledger: %w", err)
	}

	ticker := time.NewTicker(e.cfg.RefreshInterval.Duration)
	defer ticker.Stop()

	cleanupTicker := time.NewTicker(config.DefaultCleanupInterval)
	defer cleanupTicker.Stop()

	e.logger.Info("starting polling loop",
		"interval", e.cfg.RefreshInterval.Duration,
		"dry_run", e.cfg.DryRun,
		"ledger", e.store.Path(),
	)

	if stop := e.runCycle(ctx); stop {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("bot stopped gracefully")
			return nil

		case <-cleanupTicker.C:
			e.notifier.CleanupOldAlerts()

		case <-ticker.C:
			if stop := e.runCycle(ctx); stop {
				return nil
			}
		}
	}
}

// runCycle executes one cycle and folds its outcome into the status. Cycle
// errors are logged and absorbed; the next tick retries.
func (e *Engine) runCycle(ctx context.Context) bool {
	stop, err := e.Cycle(ctx)

	e.mu.Lock()
	e.status.Cycles++
	e.status.LastCycle = time.Now()
	if err != nil {
		e.status.LastError = err.Error()
	} else {
		e.status.LastError = ""
	}
	e.mu.Unlock()

	if err != nil && ctx.Err() == nil {
		e.notifier.LogError("cycle", err)
	}
	if stop {
		e.logger.Info("no live games for too many consecutive checks, exiting",
			"checks", e.noGamesCount)
	}
	return stop
}

// Cycle performs a single check: find live games, pull both quote feeds,
// detect divergences, drop already-recorded ones, place wagers, and append
// the results to the ledger. The returned bool reports that the no-games
// timeout was reached and the loop should stop.
func (e *Engine) Cycle(ctx context.Context) (bool, error) {
	liveTeams, err := e.live.LiveTeams(ctx)
	if err != nil {
		return false, fmt.Errorf("fetching live teams: %w", err)
	}
	if len(e.cfg.Teams) > 0 {
		var watched []string
		for _, team := range liveTeams {
			if slices.Contains(e.cfg.Teams, team) {
				watched = append(watched, team)
			}
		}
		liveTeams = watched
	}

	e.mu.Lock()
	e.status.LiveTeams = len(liveTeams)
	e.mu.Unlock()

	if len(liveTeams) == 0 {
		e.noGamesCount++
		e.logger.Debug("no live games", "consecutive", e.noGamesCount)
		stop := e.cfg.NoGamesTimeout > 0 && e.noGamesCount >= e.cfg.NoGamesTimeout
		return stop, nil
	}
	e.noGamesCount = 0

	// Sources serve cached pages; force a refetch every second cycle so
	// quotes cannot go stale.
	if e.refreshCount >= 2 {
		if err := e.books.Refresh(ctx); err != nil {
			return false, fmt.Errorf("refreshing book source: %w", err)
		}
		if err := e.markets.Refresh(ctx); err != nil {
			return false, fmt.Errorf("refreshing market source: %w", err)
		}
		e.refreshCount = 0
	}

	books, err := e.books.BookQuotes(ctx)
	if err != nil {
		return false, fmt.Errorf("fetching book quotes: %w", err)
	}
	markets, err := e.markets.MarketQuotes(ctx)
	if err != nil {
		return false, fmt.Errorf("fetching market quotes: %w", err)
	}
	e.refreshCount++

	opps := analysis.Actionable(analysis.Detect(books, markets, liveTeams))

	var recorded int
	if len(opps) > 0 {
		recorded, err = e.placeAll(ctx, opps)
		if err != nil {
			return false, err
		}
	}

	e.notifier.LogCycle(len(liveTeams), len(opps), recorded)
	return false, nil
}

// placeAll filters opps against the ledger history, runs the placer on the
// survivors, and appends one record per attempt. Returns how many records
// were appended.
func (e *Engine) placeAll(ctx context.Context, opps []analysis.Opportunity) (int, error) {
	history, err := e.store.Load()
	if err != nil {
		return 0, fmt.Errorf("loading ledger history: %w", err)
	}

	newOpps := ledger.FilterNew(opps, history)
	if len(newOpps) == 0 {
		return 0, nil
	}

	now := time.Now()
	stamp := ledger.EpochSeconds(now)

	records := make([]ledger.Record, 0, len(newOpps))
	for _, opp := range newOpps {
		e.notifier.AlertOpportunity(ctx, opp)

		status, err := e.placer.Place(ctx, opp, e.cfg.Unit)
		if err != nil {
			e.notifier.LogError("placing wager", err)
		}

		stake := placer.Stake(opp, e.cfg.Unit)
		if e.db != nil {
			_, err := e.db.Record(attempts.Attempt{
				Team:      opp.Team,
				KellySize: opp.KellySize,
				Price:     opp.MarketPrice,
				Stake:     stake,
				Status:    status,
				CreatedAt: now,
			})
			if err != nil {
				e.notifier.LogError("recording attempt", err)
			}
		}

		e.notifier.AlertPlacement(ctx, opp, status, stake)
		records = append(records, ledger.Record{
			Opportunity: opp,
			Timestamp:   stamp,
			Status:      status,
		})
	}

	if err := e.store.Append(records); err != nil {
		return 0, fmt.Errorf("appending wagers: %w", err)
	}

	e.mu.Lock()
	e.status.Recorded += len(records)
	e.mu.Unlock()

	return len(records), nil
}
