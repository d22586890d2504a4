// Command validate_matching checks that every team the book snapshot and
// the live scoreboard name resolves through the abbreviation table to a
// side of a current market listing. Run it against real feeds after any
// round of team-name edits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"nba-arb-bot/internal/analysis"
	"nba-arb-bot/internal/api"
	"nba-arb-bot/internal/config"
	"nba-arb-bot/internal/engine"
	"nba-arb-bot/internal/snapshot"
	"nba-arb-bot/internal/teams"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config (default $BOT_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	fmt.Println("=" + strings.Repeat("=", 79))
	fmt.Println("TEAM MATCHING VALIDATION")
	fmt.Println("=" + strings.Repeat("=", 79))
	fmt.Println()

	var markets engine.MarketSource
	switch cfg.MarketSource {
	case config.MarketSourceGamma:
		markets = api.NewGammaClient(cfg.GammaBaseURL)
	default:
		markets = snapshot.NewMarketFile(cfg.MarketSnapshotPath)
	}

	marketQuotes, err := markets.MarketQuotes(ctx)
	if err != nil {
		fmt.Printf("ERROR: Failed to fetch market quotes: %v\n", err)
		os.Exit(1)
	}

	failures := 0

	// ============================================
	// TEST 1: Book snapshot -> market side
	// ============================================
	fmt.Println("TEST 1: BOOK SNAPSHOT -> MARKET SIDE")
	fmt.Println("-" + strings.Repeat("-", 79))

	bookQuotes, err := snapshot.NewBookFile(cfg.BookSnapshotPath).BookQuotes(ctx)
	if err != nil {
		fmt.Printf("skipped, no book snapshot: %v\n\n", err)
	} else {
		fmt.Printf("Book rows: %d, market listings: %d\n\n", len(bookQuotes), len(marketQuotes))
		for _, q := range bookQuotes {
			label, ok := matchSide(q.Team, marketQuotes)
			if !ok {
				failures++
			}
			fmt.Printf("  %-22s -> %s\n", q.Team, label)
		}
		fmt.Println()
	}

	// ============================================
	// TEST 2: Scoreboard -> market side
	// ============================================
	fmt.Println("TEST 2: SCOREBOARD -> MARKET SIDE")
	fmt.Println("-" + strings.Repeat("-", 79))

	live, err := api.NewScoreboardClient(cfg.ScoreboardURL).LiveTeams(ctx)
	if err != nil {
		fmt.Printf("skipped, scoreboard unavailable: %v\n\n", err)
	} else if len(live) == 0 {
		fmt.Println("No games in progress.")
		fmt.Println()
	} else {
		for _, team := range live {
			label, ok := matchSide(team, marketQuotes)
			if !ok {
				failures++
			}
			fmt.Printf("  %-22s -> %s\n", team, label)
		}
		fmt.Println()
	}

	fmt.Printf("Mapped teams in table: %d\n", teams.Count())
	if failures > 0 {
		fmt.Printf("RESULT: %d teams failed to match\n", failures)
		os.Exit(1)
	}
	fmt.Println("RESULT: all teams matched")
}

// matchSide resolves a team name the way detection does: abbreviation
// lookup, then case-insensitive substring search over each listing's
// side labels, away first.
func matchSide(team string, markets []analysis.MarketQuote) (string, bool) {
	abbr, ok := teams.Abbreviation(team)
	if !ok {
		return "NO ABBREVIATION", false
	}
	needle := strings.ToLower(abbr)

	for _, m := range markets {
		if strings.Contains(strings.ToLower(m.AwayTeam), needle) {
			return fmt.Sprintf("%s (away, %.3f)", m.AwayTeam, m.AwayPrice), true
		}
		if strings.Contains(strings.ToLower(m.HomeTeam), needle) {
			return fmt.Sprintf("%s (home, %.3f)", m.HomeTeam, m.HomePrice), true
		}
	}
	return fmt.Sprintf("NO MARKET SIDE for %s", abbr), false
}
