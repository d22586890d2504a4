// Command debug_gamma dumps today's gamma moneyline markets with the
// overround and devigged fair probabilities for each pair.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"nba-arb-bot/internal/api"
	"nba-arb-bot/internal/config"
	"nba-arb-bot/internal/odds"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config (default $BOT_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	client := api.NewGammaClient(cfg.GammaBaseURL)

	quotes, err := client.Markets(context.Background(), time.Now())
	if err != nil {
		fmt.Printf("Error fetching gamma markets: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== GAMMA MONEYLINE MARKETS (%s) ===\n", time.Now().Format("2006-01-02"))
	fmt.Printf("Markets today: %d\n\n", len(quotes))

	for _, q := range quotes {
		sum := q.AwayPrice + q.HomePrice
		fairAway, fairHome := odds.RemoveVig(q.AwayPrice, q.HomePrice)
		powerAway, powerHome := odds.RemoveVigPower(q.AwayPrice, q.HomePrice)

		fmt.Printf("%s @ %s\n", q.AwayTeam, q.HomeTeam)
		fmt.Printf("  Prices: %.3f / %.3f  (sum %.3f, spread %+.1f%%)\n",
			q.AwayPrice, q.HomePrice, sum, 100*(sum-1))
		fmt.Printf("  Fair (proportional): %.3f / %.3f\n", fairAway, fairHome)
		fmt.Printf("  Fair (power):        %.3f / %.3f\n", powerAway, powerHome)

		if awayOdds, err := odds.AmericanFromProbability(q.AwayPrice); err == nil {
			homeOdds, err := odds.AmericanFromProbability(q.HomePrice)
			if err == nil {
				fmt.Printf("  American: %+d / %+d\n", awayOdds, homeOdds)
			}
		}
		fmt.Println()
	}
}
