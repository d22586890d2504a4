// Command outcomes maintains the game-outcome store the analyzer joins
// wagers against. Results come from the balldontlie games endpoint.
//
// Subcommands:
//
//	sync    fetch one day's final scores (yesterday by default) and merge
//	missing walk back from yesterday and sync every day without outcomes
//	verify  re-fetch one day and compare it against the stored slate
//	watch   run sync on the configured cron schedule until interrupted
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nba-arb-bot/internal/api"
	"nba-arb-bot/internal/config"
	"nba-arb-bot/internal/outcomes"
	"nba-arb-bot/internal/schedule"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "sync":
		runSync(args)
	case "missing":
		runMissing(args)
	case "verify":
		runVerify(args)
	case "watch":
		runWatch(args)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage: outcomes <sync|missing|verify|watch> [flags]")
}

// setup loads config and builds the results client and outcome store every
// subcommand needs.
func setup(fs *flag.FlagSet, args []string) (config.Config, *api.ResultsClient, *outcomes.Store) {
	configPath := fs.String("config", "", "path to TOML config (default $BOT_CONFIG)")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.ResultsAPIKey == "" {
		fmt.Println("Error: BALLDONTLIE_API_KEY not set")
		os.Exit(1)
	}

	store := outcomes.NewStore(cfg.OutcomesPath)
	if err := store.EnsureFile(); err != nil {
		fmt.Printf("Error creating outcomes file: %v\n", err)
		os.Exit(1)
	}

	return cfg, api.NewResultsClient(cfg.ResultsBaseURL, cfg.ResultsAPIKey), store
}

func parseDay(s string) time.Time {
	day, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		fmt.Printf("Error: bad date %q, want YYYY-MM-DD\n", s)
		os.Exit(1)
	}
	return day
}

func syncDay(ctx context.Context, results *api.ResultsClient, store *outcomes.Store, day time.Time) error {
	slate, err := results.Slate(ctx, day)
	if err != nil {
		return err
	}

	for _, matchup := range slate.Pending {
		fmt.Printf("  still pending: %s\n", matchup)
	}
	if len(slate.Results) == 0 {
		fmt.Printf("%s: no final games\n", outcomes.DateKey(day))
		return nil
	}

	if err := store.MergeSlate(day, slate.Results); err != nil {
		return err
	}
	fmt.Printf("%s: saved %d team outcomes\n", outcomes.DateKey(day), len(slate.Results))
	return nil
}

func runSync(args []string) {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	date := fs.String("date", "", "day to sync as YYYY-MM-DD (default yesterday)")
	_, results, store := setup(fs, args)

	day := time.Now().AddDate(0, 0, -1)
	if *date != "" {
		day = parseDay(*date)
	}

	if err := syncDay(context.Background(), results, store, day); err != nil {
		fmt.Printf("Error syncing %s: %v\n", outcomes.DateKey(day), err)
		os.Exit(1)
	}
}

func runMissing(args []string) {
	fs := flag.NewFlagSet("missing", flag.ExitOnError)
	listOnly := fs.Bool("list", false, "only list missing dates, do not sync them")
	cfg, results, store := setup(fs, args)

	table, err := store.Load()
	if err != nil {
		fmt.Printf("Error loading outcomes: %v\n", err)
		os.Exit(1)
	}

	yesterday := time.Now().AddDate(0, 0, -1)
	missing := table.MissingDates(yesterday, cfg.BackfillHorizonDays)
	if len(missing) == 0 {
		fmt.Println("No missing dates")
		return
	}

	fmt.Printf("%d missing dates (walking back from %s):\n", len(missing), outcomes.DateKey(yesterday))
	for _, key := range missing {
		if *listOnly {
			fmt.Printf("  %s\n", key)
			continue
		}
		if err := syncDay(context.Background(), results, store, parseDay(key)); err != nil {
			fmt.Printf("Error syncing %s: %v\n", key, err)
			os.Exit(1)
		}
	}
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	date := fs.String("date", "", "day to verify as YYYY-MM-DD (required)")
	_, results, store := setup(fs, args)

	if *date == "" {
		fmt.Println("Error: -date is required")
		os.Exit(2)
	}
	day := parseDay(*date)

	table, err := store.Load()
	if err != nil {
		fmt.Printf("Error loading outcomes: %v\n", err)
		os.Exit(1)
	}

	slate, err := results.Slate(context.Background(), day)
	if err != nil {
		fmt.Printf("Error fetching %s: %v\n", *date, err)
		os.Exit(1)
	}

	match, err := table.Verify(day, slate.Results)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if !match {
		fmt.Printf("%s: MISMATCH between stored and fetched outcomes\n", *date)
		fmt.Printf("  stored:  %v\n", table[outcomes.DateKey(day)])
		fmt.Printf("  fetched: %v\n", slate.Results)
		os.Exit(1)
	}
	fmt.Printf("%s: outcomes match (%d teams)\n", *date, len(slate.Results))
}

func runWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	cfg, results, store := setup(fs, args)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := schedule.New(logger, ctx)
	_, err := runner.Add(cfg.OutcomesSyncCron, func(ctx context.Context) {
		day := time.Now().AddDate(0, 0, -1)
		if err := syncDay(ctx, results, store, day); err != nil {
			logger.Error("sync failed", "date", outcomes.DateKey(day), "error", err)
		}
	})
	if err != nil {
		fmt.Printf("Error scheduling sync: %v\n", err)
		os.Exit(1)
	}

	logger.Info("watching", "cron", cfg.OutcomesSyncCron, "store", store.Path())
	runner.Start()
	<-ctx.Done()
	runner.Stop()
}
