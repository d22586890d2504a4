// Command scan runs one detection pass over the configured book and market
// sources and prints the ranked opportunity table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"nba-arb-bot/internal/analysis"
	"nba-arb-bot/internal/api"
	"nba-arb-bot/internal/config"
	"nba-arb-bot/internal/engine"
	"nba-arb-bot/internal/snapshot"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config (default $BOT_CONFIG)")
	liveOnly := flag.Bool("live", false, "restrict to teams playing right now")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	books := snapshot.NewBookFile(cfg.BookSnapshotPath)

	var markets engine.MarketSource
	switch cfg.MarketSource {
	case config.MarketSourceGamma:
		markets = api.NewGammaClient(cfg.GammaBaseURL)
	default:
		markets = snapshot.NewMarketFile(cfg.MarketSnapshotPath)
	}

	bookQuotes, err := books.BookQuotes(ctx)
	if err != nil {
		fmt.Printf("Error reading book quotes: %v\n", err)
		os.Exit(1)
	}
	marketQuotes, err := markets.MarketQuotes(ctx)
	if err != nil {
		fmt.Printf("Error reading market quotes: %v\n", err)
		os.Exit(1)
	}

	teamFilter := cfg.Teams
	if *liveOnly {
		liveTeams, err := api.NewScoreboardClient(cfg.ScoreboardURL).LiveTeams(ctx)
		if err != nil {
			fmt.Printf("Error fetching live teams: %v\n", err)
			os.Exit(1)
		}
		teamFilter = liveTeams
	}

	opps := analysis.Detect(bookQuotes, marketQuotes, teamFilter)
	if len(opps) == 0 {
		fmt.Println("No opportunities detected")
		return
	}

	fmt.Printf("%-16s %-6s %10s %6s %6s %8s %8s\n",
		"TEAM", "WAGER", "KELLY SIZE", "DIFF", "BOOK", "MARKET", "PRICE")
	for _, opp := range opps {
		fmt.Printf("%-16s %-6v %10.2f %6d %+6d %+8d %8.3f\n",
			opp.Team, opp.Wager, opp.KellySize, opp.Diff,
			opp.BookOdds, opp.MarketOdds, opp.MarketPrice)
	}

	actionable := analysis.Actionable(opps)
	fmt.Printf("\n%d of %d worth wagering\n", len(actionable), len(opps))
}
