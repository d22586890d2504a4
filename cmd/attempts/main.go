// Command attempts lists the placement attempts recorded in SQLite,
// newest first, with a per-status tally.
package main

import (
	"flag"
	"fmt"
	"os"

	"nba-arb-bot/internal/attempts"
	"nba-arb-bot/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config (default $BOT_CONFIG)")
	team := flag.String("team", "", "restrict to one team")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	db, err := attempts.NewDB(cfg.AttemptsDBPath)
	if err != nil {
		fmt.Printf("Error opening attempts db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var rows []attempts.Attempt
	if *team != "" {
		rows, err = db.ListByTeam(*team)
	} else {
		rows, err = db.List()
	}
	if err != nil {
		fmt.Printf("Error listing attempts: %v\n", err)
		os.Exit(1)
	}

	if len(rows) == 0 {
		fmt.Println("No attempts recorded")
		return
	}

	fmt.Printf("%-20s %-16s %10s %8s %8s  %s\n",
		"CREATED", "TEAM", "KELLY SIZE", "PRICE", "STAKE", "STATUS")
	for _, a := range rows {
		fmt.Printf("%-20s %-16s %10.2f %8.3f %8.2f  %s\n",
			a.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			a.Team, a.KellySize, a.Price, a.Stake, a.Status)
	}

	counts, err := db.CountByStatus()
	if err != nil {
		fmt.Printf("Error counting attempts: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n%d attempts", len(rows))
	for status, n := range counts {
		fmt.Printf(" | %s: %d", status, n)
	}
	fmt.Println()
}
