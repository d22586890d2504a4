package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"nba-arb-bot/internal/alerts"
	"nba-arb-bot/internal/analysis"
	"nba-arb-bot/internal/attempts"
	"nba-arb-bot/internal/config"
	"nba-arb-bot/internal/ledger"
)

type fakeLive struct {
	teams []string
	err   error
	calls int
}

func (f *fakeLive) LiveTeams(ctx context.Context) ([]string, error) {
	f.calls++
	return f.teams, f.err
}

type fakeBook struct {
	quotes    []analysis.BookQuote
	err       error
	refreshes int
}

func (f *fakeBook) BookQuotes(ctx context.Context) ([]analysis.BookQuote, error) {
	return f.quotes, f.err
}

func (f *fakeBook) Refresh(ctx context.Context) error {
	f.refreshes++
	return nil
}

type fakeMarket struct {
	quotes    []analysis.MarketQuote
	err       error
	refreshes int
}

func (f *fakeMarket) MarketQuotes(ctx context.Context) ([]analysis.MarketQuote, error) {
	return f.quotes, f.err
}

func (f *fakeMarket) Refresh(ctx context.Context) error {
	f.refreshes++
	return nil
}

type fakePlacer struct {
	status ledger.WagerStatus
	err    error
	calls  int
}

func (f *fakePlacer) Place(ctx context.Context, opp analysis.Opportunity, unit float64) (ledger.WagerStatus, error) {
	f.calls++
	return f.status, f.err
}

// edgeFixture is a book/market pair where the Nuggets book line of -150
// diverges from a market price of 0.5 (-100), so Detect fires on it.
func edgeFixture() (*fakeBook, *fakeMarket) {
	book := &fakeBook{quotes: []analysis.BookQuote{
		{Team: "Nuggets", Moneyline: "-150"},
		{Team: "Heat", Moneyline: "+130"},
	}}
	market := &fakeMarket{quotes: []analysis.MarketQuote{
		{AwayTeam: "DEN", AwayPrice: 0.5, HomeTeam: "MIA", HomePrice: 0.5},
	}}
	return book, market
}

type testEngine struct {
	*Engine
	live   *fakeLive
	book   *fakeBook
	market *fakeMarket
	placer *fakePlacer
	store  *ledger.Store
}

func newTestEngine(t *testing.T, mutate func(*config.Config)) *testEngine {
	t.Helper()

	live := &fakeLive{teams: []string{"Nuggets", "Heat"}}
	book, market := edgeFixture()
	pl := &fakePlacer{status: ledger.StatusDryRun}

	cfg := config.Defaults()
	cfg.LedgerPath = filepath.Join(t.TempDir(), "wagers.csv")
	if mutate != nil {
		mutate(&cfg)
	}

	store := ledger.NewStore(cfg.LedgerPath)
	if err := store.EnsureFile(); err != nil {
		t.Fatalf("EnsureFile: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := New(live, book, market, store, pl, nil, alerts.NewNotifier(time.Hour), cfg, logger)

	return &testEngine{Engine: eng, live: live, book: book, market: market, placer: pl, store: store}
}

func TestCycleRecordsNewOpportunities(t *testing.T) {
	te := newTestEngine(t, nil)

	stop, err := te.Cycle(context.Background())
	if err != nil {
		t.Fatalf("Cycle: %v", err)
	}
	if stop {
		t.Fatal("Cycle asked to stop")
	}

	records, err := te.store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ledger has %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Team != "Nuggets" {
		t.Errorf("Team = %q, want Nuggets", rec.Team)
	}
	if rec.BookOdds != -150 || rec.MarketOdds != -100 {
		t.Errorf("odds = %d/%d, want -150/-100", rec.BookOdds, rec.MarketOdds)
	}
	if rec.Status != ledger.StatusDryRun {
		t.Errorf("Status = %q, want %q", rec.Status, ledger.StatusDryRun)
	}
	if te.placer.calls != 1 {
		t.Errorf("placer calls = %d, want 1", te.placer.calls)
	}

	// An unchanged market must not be recorded twice.
	if _, err := te.Cycle(context.Background()); err != nil {
		t.Fatalf("second Cycle: %v", err)
	}
	records, err = te.store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("ledger has %d records after repeat cycle, want 1", len(records))
	}
	if te.placer.calls != 1 {
		t.Errorf("placer calls after repeat cycle = %d, want 1", te.placer.calls)
	}
}

func TestCycleRecordsAttempts(t *testing.T) {
	te := newTestEngine(t, nil)

	db, err := attempts.NewDB(filepath.Join(t.TempDir(), "attempts.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer db.Close()
	te.db = db

	if _, err := te.Cycle(context.Background()); err != nil {
		t.Fatalf("Cycle: %v", err)
	}

	all, err := db.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("attempts has %d rows, want 1", len(all))
	}
	if all[0].Team != "Nuggets" || all[0].Status != ledger.StatusDryRun {
		t.Errorf("attempt = %+v", all[0])
	}
	if all[0].Price != 0.5 {
		t.Errorf("attempt price = %v, want 0.5", all[0].Price)
	}
}

func TestCycleTeamFilter(t *testing.T) {
	te := newTestEngine(t, func(c *config.Config) {
		c.Teams = []string{"Heat"}
	})

	if _, err := te.Cycle(context.Background()); err != nil {
		t.Fatalf("Cycle: %v", err)
	}

	records, err := te.store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// The Nuggets edge is filtered out; the Heat line (+130 vs -100)
	// does not fire.
	if len(records) != 0 {
		t.Errorf("ledger has %d records, want 0: %+v", len(records), records)
	}
}

func TestCycleNoGamesTimeout(t *testing.T) {
	te := newTestEngine(t, func(c *config.Config) {
		c.NoGamesTimeout = 2
	})
	te.live.teams = nil

	stop, err := te.Cycle(context.Background())
	if err != nil || stop {
		t.Fatalf("first empty cycle: stop=%v err=%v", stop, err)
	}

	stop, err = te.Cycle(context.Background())
	if err != nil {
		t.Fatalf("second empty cycle: %v", err)
	}
	if !stop {
		t.Error("second consecutive empty cycle should stop")
	}
}

func TestCycleNoGamesCounterResets(t *testing.T) {
	te := newTestEngine(t, func(c *config.Config) {
		c.NoGamesTimeout = 2
	})

	te.live.teams = nil
	if stop, _ := te.Cycle(context.Background()); stop {
		t.Fatal("first empty cycle stopped early")
	}

	// A cycle with games resets the counter.
	te.live.teams = []string{"Nuggets", "Heat"}
	if _, err := te.Cycle(context.Background()); err != nil {
		t.Fatalf("Cycle with games: %v", err)
	}

	te.live.teams = nil
	if stop, _ := te.Cycle(context.Background()); stop {
		t.Error("counter should have reset after a cycle with games")
	}
}

func TestCycleTimeoutDisabled(t *testing.T) {
	te := newTestEngine(t, nil) // NoGamesTimeout defaults to 0
	te.live.teams = nil

	for i := 0; i < 10; i++ {
		stop, err := te.Cycle(context.Background())
		if err != nil {
			t.Fatalf("Cycle %d: %v", i, err)
		}
		if stop {
			t.Fatalf("Cycle %d asked to stop with timeout disabled", i)
		}
	}
}

func TestCycleRefreshesEverySecondCycle(t *testing.T) {
	te := newTestEngine(t, nil)

	for i := 0; i < 5; i++ {
		if _, err := te.Cycle(context.Background()); err != nil {
			t.Fatalf("Cycle %d: %v", i, err)
		}
	}

	// Cycles 3 and 5 find the refresh counter at 2.
	if te.book.refreshes != 2 {
		t.Errorf("book refreshes = %d, want 2", te.book.refreshes)
	}
	if te.market.refreshes != 2 {
		t.Errorf("market refreshes = %d, want 2", te.market.refreshes)
	}
}

func TestCycleEmptyCyclesDoNotRefresh(t *testing.T) {
	te := newTestEngine(t, nil)
	te.live.teams = nil

	for i := 0; i < 5; i++ {
		if _, err := te.Cycle(context.Background()); err != nil {
			t.Fatalf("Cycle %d: %v", i, err)
		}
	}

	if te.book.refreshes != 0 {
		t.Errorf("book refreshes = %d, want 0", te.book.refreshes)
	}
}

func TestCycleSourceError(t *testing.T) {
	wantErr := errors.New("scrape failed")

	te := newTestEngine(t, nil)
	te.book.err = wantErr

	if _, err := te.Cycle(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("Cycle err = %v, want %v", err, wantErr)
	}

	records, err := te.store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("failed cycle wrote %d records", len(records))
	}
}

func TestCyclePlacerErrorStillRecords(t *testing.T) {
	te := newTestEngine(t, nil)
	te.placer.status = ledger.StatusException
	te.placer.err = errors.New("panel vanished")

	if _, err := te.Cycle(context.Background()); err != nil {
		t.Fatalf("Cycle: %v", err)
	}

	records, err := te.store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ledger has %d records, want 1", len(records))
	}
	if records[0].Status != ledger.StatusException {
		t.Errorf("Status = %q, want %q", records[0].Status, ledger.StatusException)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	te := newTestEngine(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- te.Run(ctx) }()

	// The first cycle runs before the first tick; wait for its record.
	deadline := time.After(5 * time.Second)
	for {
		records, err := te.store.Load()
		if err == nil && len(records) == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first cycle never recorded")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}

	st := te.Status()
	if st.Cycles != 1 {
		t.Errorf("Cycles = %d, want 1", st.Cycles)
	}
	if st.Recorded != 1 {
		t.Errorf("Recorded = %d, want 1", st.Recorded)
	}
}

func TestRunStopsOnNoGamesTimeout(t *testing.T) {
	te := newTestEngine(t, func(c *config.Config) {
		c.NoGamesTimeout = 1
	})
	te.live.teams = nil

	done := make(chan error, 1)
	go func() { done <- te.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on the no-games timeout")
	}
}
