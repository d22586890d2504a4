// Command ledger performs one-off maintenance on the wager CSV. Every
// subcommand writes a fresh file at -out and leaves the input untouched, so
// a bad run never corrupts the ledger.
//
// Subcommands:
//
//	backfill-price  insert the market price column derived from market odds
//	backfill-status append the placement status column with a fixed value
//	remove-date     drop rows recorded on one local day
//	dedupe          drop exact duplicate rows, keeping the first
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"nba-arb-bot/internal/config"
	"nba-arb-bot/internal/ledger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "backfill-price":
		runBackfillPrice(args)
	case "backfill-status":
		runBackfillStatus(args)
	case "remove-date":
		runRemoveDate(args)
	case "dedupe":
		runDedupe(args)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage: ledger <backfill-price|backfill-status|remove-date|dedupe> -out FILE [flags]")
}

// paths resolves the input ledger (the configured one unless -in overrides)
// and the mandatory output path.
func paths(fs *flag.FlagSet, args []string) (string, string) {
	configPath := fs.String("config", "", "path to TOML config (default $BOT_CONFIG)")
	in := fs.String("in", "", "input CSV (default the configured ledger)")
	out := fs.String("out", "", "output CSV (required, never the input)")
	fs.Parse(args)

	if *in == "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		*in = cfg.LedgerPath
	}
	if *out == "" {
		fmt.Println("Error: -out is required")
		os.Exit(2)
	}
	if *out == *in {
		fmt.Println("Error: -out must differ from the input path")
		os.Exit(2)
	}
	return *in, *out
}

func runBackfillPrice(args []string) {
	fs := flag.NewFlagSet("backfill-price", flag.ExitOnError)
	in, out := paths(fs, args)

	if err := ledger.BackfillPrice(in, out); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s with the market price column\n", out)
}

func runBackfillStatus(args []string) {
	fs := flag.NewFlagSet("backfill-status", flag.ExitOnError)
	status := fs.String("status", string(ledger.StatusDryRun), "status value to fill")
	in, out := paths(fs, args)

	fill := ledger.WagerStatus(*status)
	if !fill.Valid() {
		fmt.Printf("Error: unknown status %q\n", *status)
		os.Exit(2)
	}

	if err := ledger.BackfillStatus(in, out, fill); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s with status %q\n", out, fill)
}

func runRemoveDate(args []string) {
	fs := flag.NewFlagSet("remove-date", flag.ExitOnError)
	date := fs.String("date", "", "local day to remove as YYYY-MM-DD (required)")
	teams := fs.String("teams", "", "comma-separated team filter (default all teams)")
	in, out := paths(fs, args)

	if *date == "" {
		fmt.Println("Error: -date is required")
		os.Exit(2)
	}
	day, err := time.ParseInLocation("2006-01-02", *date, time.Local)
	if err != nil {
		fmt.Printf("Error: bad date %q, want YYYY-MM-DD\n", *date)
		os.Exit(1)
	}

	var teamList []string
	for _, team := range strings.Split(*teams, ",") {
		if team = strings.TrimSpace(team); team != "" {
			teamList = append(teamList, team)
		}
	}

	removed, err := ledger.RemoveByDate(in, out, day, teamList)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s, removed %d rows from %s\n", out, removed, *date)
}

func runDedupe(args []string) {
	fs := flag.NewFlagSet("dedupe", flag.ExitOnError)
	in, out := paths(fs, args)

	removed, err := ledger.RemoveDuplicates(in, out)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s, removed %d duplicate rows\n", out, removed)
}
