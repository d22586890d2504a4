// Command analyze reports ledger performance: summary stats, running P/L
// charts per staking strategy, and risked dollars per day.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"nba-arb-bot/internal/config"
	"nba-arb-bot/internal/ledger"
	"nba-arb-bot/internal/outcomes"
	"nba-arb-bot/internal/performance"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config (default $BOT_CONFIG)")
	chartDir := flag.String("charts", "charts", "directory PNG charts are written to")
	noCharts := flag.Bool("no-charts", false, "skip chart rendering")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	records, err := ledger.NewStore(cfg.LedgerPath).Load()
	if err != nil {
		fmt.Printf("Error loading ledger: %v\n", err)
		os.Exit(1)
	}
	table, err := outcomes.NewStore(cfg.OutcomesPath).Load()
	if err != nil {
		fmt.Printf("Error loading outcomes: %v\n", err)
		os.Exit(1)
	}

	rows, err := performance.BuildRows(records, table, cfg.AnalysisIgnoreTeams)
	if err != nil {
		fmt.Printf("Error resolving outcomes: %v\n", err)
		os.Exit(1)
	}

	summary, err := performance.Summarize(rows, cfg.RiskFreeRate)
	if err != nil {
		fmt.Printf("Error summarizing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("n=%d\n", summary.N)
	fmt.Printf("Accuracy: %.2f\n", summary.Accuracy)
	fmt.Printf("Equal weight profit: %.2f, risked %.2f, ROI %.2f, Sharpe %.2f\n",
		summary.Equal.Profit, summary.Equal.Risked, summary.Equal.ROI, summary.Equal.Sharpe)
	fmt.Printf("Kelly weight profit: %.2f, risked %.2f, ROI %.2f, Sharpe %.2f\n",
		summary.Kelly.Profit, summary.Kelly.Risked, summary.Kelly.ROI, summary.Kelly.Sharpe)

	fmt.Println("\nRisked by day:")
	for _, day := range performance.RiskByDay(rows, cfg.Unit) {
		fmt.Printf("  %s  $%8.2f  (%d bets)\n", day.Date, day.Risk, day.Bets)
	}

	if *noCharts {
		return
	}

	if err := os.MkdirAll(*chartDir, 0o755); err != nil {
		fmt.Printf("Error creating chart dir: %v\n", err)
		os.Exit(1)
	}

	type chart struct {
		name   string
		title  string
		curves map[string][]float64
	}
	charts := []chart{
		{"strategies.png", "Running P/L by Strategy", performance.Simulate(rows, performance.StockStrategies())},
		{"kelly_caps.png", "Running P/L by Kelly Cap", performance.CapSweep(rows)},
	}
	if placed := performance.PlacedOnly(rows); len(placed) > 0 {
		charts = append(charts, chart{
			"placed.png", "Running P/L (Placed Wagers Only)",
			performance.Simulate(placed, performance.StockStrategies()),
		})
	}

	for _, c := range charts {
		path := filepath.Join(*chartDir, c.name)
		if err := performance.ChartCurves(c.curves, c.title, path); err != nil {
			fmt.Printf("Error rendering %s: %v\n", c.name, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	}
}
