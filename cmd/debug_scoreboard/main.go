// Command debug_scoreboard prints the teams the live scoreboard feed
// reports as playing right now.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"nba-arb-bot/internal/api"
	"nba-arb-bot/internal/config"
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

	client := api.NewScoreboardClient(cfg.ScoreboardURL)

	live, err := client.LiveTeams(context.Background())
	if err != nil {
		fmt.Printf("Error fetching scoreboard: %v\n", err)
		os.Exit(1)
	}

	if len(live) == 0 {
		fmt.Println("No games in progress.")
		return
	}

	fmt.Printf("Teams in progress: %d\n", len(live))
	for _, team := range live {
		abbr, ok := teams.Abbreviation(team)
		if !ok {
			abbr = "???"
		}
		fmt.Printf("  %-22s %s\n", team, abbr)
	}
}
