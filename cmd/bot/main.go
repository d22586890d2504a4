// Command bot runs the live polling loop: scoreboard-gated odds polling,
// divergence detection, wager placement (dry run unless a venue is wired),
// and ledger recording, with a health endpoint and an optional nightly
// outcomes sync.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"nba-arb-bot/internal/alerts"
	"nba-arb-bot/internal/api"
	"nba-arb-bot/internal/attempts"
	"nba-arb-bot/internal/config"
	"nba-arb-bot/internal/engine"
	"nba-arb-bot/internal/ledger"
	"nba-arb-bot/internal/outcomes"
	"nba-arb-bot/internal/placer"
	"nba-arb-bot/internal/schedule"
	"nba-arb-bot/internal/snapshot"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config (default $BOT_CONFIG)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	live := api.NewScoreboardClient(cfg.ScoreboardURL)
	books := snapshot.NewBookFile(cfg.BookSnapshotPath)

	var markets engine.MarketSource
	switch cfg.MarketSource {
	case config.MarketSourceGamma:
		markets = api.NewGammaClient(cfg.GammaBaseURL)
	default:
		markets = snapshot.NewMarketFile(cfg.MarketSnapshotPath)
	}

	store := ledger.NewStore(cfg.LedgerPath)

	if err := os.MkdirAll(filepath.Dir(cfg.AttemptsDBPath), 0o755); err != nil {
		logger.Error("creating attempts dir", "error", err)
		os.Exit(1)
	}
	db, err := attempts.NewDB(cfg.AttemptsDBPath)
	if err != nil {
		logger.Error("opening attempts db", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	notifier := alerts.NewNotifier(cfg.AlertCooldown.Duration)
	if cfg.DiscordWebhookURL != "" {
		notifier.AddSender(alerts.NewDiscordSender(cfg.DiscordWebhookURL))
	}

	// No trading venue ships with the bot; placement is always a dry run
	// until one is wired into a placer.Market.
	if !cfg.DryRun {
		logger.Warn("dry_run=false but no trading venue is wired, forcing dry run")
	}
	pl := placer.DryRun{}

	eng := engine.New(live, books, markets, store, pl, db, notifier, cfg, logger)

	go serveHealth(cfg.HealthAddr, eng, logger)

	if cfg.OutcomesSyncCron != "" && cfg.ResultsAPIKey != "" {
		runner := schedule.New(logger, ctx)
		results := api.NewResultsClient(cfg.ResultsBaseURL, cfg.ResultsAPIKey)
		outStore := outcomes.NewStore(cfg.OutcomesPath)
		if err := outStore.EnsureFile(); err != nil {
			logger.Error("creating outcomes file", "error", err)
			os.Exit(1)
		}

		_, err := runner.Add(cfg.OutcomesSyncCron, func(ctx context.Context) {
			syncYesterday(ctx, results, outStore, logger)
		})
		if err != nil {
			logger.Error("scheduling outcomes sync", "cron", cfg.OutcomesSyncCron, "error", err)
			os.Exit(1)
		}
		runner.Start()
		defer runner.Stop()
	} else if cfg.OutcomesSyncCron != "" {
		logger.Warn("outcomes sync disabled, no results API key configured")
	}

	if err := eng.Run(ctx); err != nil {
		logger.Error("engine stopped", "error", err)
		os.Exit(1)
	}
}

func syncYesterday(ctx context.Context, results *api.ResultsClient, store *outcomes.Store, logger *slog.Logger) {
	day := time.Now().AddDate(0, 0, -1)

	slate, err := results.Slate(ctx, day)
	if err != nil {
		logger.Error("outcomes sync failed", "date", outcomes.DateKey(day), "error", err)
		return
	}
	if len(slate.Pending) > 0 {
		logger.Warn("games still pending", "date", outcomes.DateKey(day), "pending", slate.Pending)
	}
	if len(slate.Results) == 0 {
		logger.Info("no final games to sync", "date", outcomes.DateKey(day))
		return
	}

	if err := store.MergeSlate(day, slate.Results); err != nil {
		logger.Error("saving outcomes", "date", outcomes.DateKey(day), "error", err)
		return
	}
	logger.Info("outcomes synced", "date", outcomes.DateKey(day), "teams", len(slate.Results))
}

func serveHealth(addr string, eng *engine.Engine, logger *slog.Logger) {
	start := time.Now()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		st := eng.Status()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":     "ok",
			"uptime":     time.Since(start).Round(time.Second).String(),
			"cycles":     st.Cycles,
			"last_cycle": st.LastCycle,
			"last_error": st.LastError,
			"live_teams": st.LiveTeams,
			"recorded":   st.Recorded,
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("NBA Arb Bot - Running"))
	})

	logger.Info("health server listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("health server stopped", "error", err)
	}
}
