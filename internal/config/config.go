// Package config assembles the bot's configuration from defaults, an
// optional TOML file, a .env file, and environment overrides, in that
// order.
package config

import (
	"fmt"
	"time"
)

// Market source modes.
const (
	MarketSourceFile  = "file"
	MarketSourceGamma = "gamma"
)

// Defaults for configuration values.
const (
	DefaultLedgerPath         = "data/wagers.csv"
	DefaultOutcomesPath       = "data/outcomes.json"
	DefaultAttemptsDBPath     = "data/attempts.db"
	DefaultBookSnapshotPath   = "data/book.json"
	DefaultMarketSnapshotPath = "data/market.json"
	DefaultUnit               = 0.25
	DefaultRefreshInterval    = 60 * time.Second
	DefaultRiskFreeRate       = 0.046
	DefaultGammaBaseURL       = "https://gamma-api.polymarket.com"
	DefaultResultsBaseURL     = "https://api.balldontlie.io/v1"
	DefaultScoreboardURL      = "https://cdn.nba.com/static/json/liveData/scoreboard/todaysScoreboard_00.json"
	DefaultHealthAddr         = ":8080"
	DefaultAlertCooldown      = 5 * time.Minute
	DefaultCleanupInterval    = 10 * time.Minute
	DefaultOutcomesSyncCron   = "0 6 * * *"
	DefaultBackfillHorizon    = 30
)

// Config holds all application configuration.
type Config struct {
	// Data files. The ledger path is explicit; nothing derives file
	// names from the environment at runtime.
	LedgerPath     string `toml:"ledger_path"`
	OutcomesPath   string `toml:"outcomes_path"`
	AttemptsDBPath string `toml:"attempts_db_path"`

	// Wagering.
	Unit            float64  `toml:"unit"`
	DryRun          bool     `toml:"dry_run"`
	Teams           []string `toml:"teams"`
	RefreshInterval duration `toml:"refresh_interval"`
	NoGamesTimeout  int      `toml:"no_games_timeout"` // consecutive empty checks before exit; 0 runs forever

	// Sources.
	MarketSource       string `toml:"market_source"` // "file" or "gamma"
	BookSnapshotPath   string `toml:"book_snapshot_path"`
	MarketSnapshotPath string `toml:"market_snapshot_path"`
	GammaBaseURL       string `toml:"gamma_base_url"`
	ScoreboardURL      string `toml:"scoreboard_url"`
	ResultsBaseURL     string `toml:"results_base_url"`
	ResultsAPIKey      string `toml:"results_api_key"`

	// Analysis.
	RiskFreeRate        float64  `toml:"risk_free_rate"`
	AnalysisIgnoreTeams []string `toml:"analysis_ignore_teams"`
	BackfillHorizonDays int      `toml:"backfill_horizon_days"`

	// Operations.
	HealthAddr        string   `toml:"health_addr"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	AlertCooldown     duration `toml:"alert_cooldown"`
	OutcomesSyncCron  string   `toml:"outcomes_sync_cron"`
}

// duration wraps time.Duration so the TOML decoder can parse strings
// like "60s" or "5m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		LedgerPath:          DefaultLedgerPath,
		OutcomesPath:        DefaultOutcomesPath,
		AttemptsDBPath:      DefaultAttemptsDBPath,
		Unit:                DefaultUnit,
		DryRun:              true,
		RefreshInterval:     duration{DefaultRefreshInterval},
		NoGamesTimeout:      0,
		MarketSource:        MarketSourceFile,
		BookSnapshotPath:    DefaultBookSnapshotPath,
		MarketSnapshotPath:  DefaultMarketSnapshotPath,
		GammaBaseURL:        DefaultGammaBaseURL,
		ScoreboardURL:       DefaultScoreboardURL,
		ResultsBaseURL:      DefaultResultsBaseURL,
		RiskFreeRate:        DefaultRiskFreeRate,
		BackfillHorizonDays: DefaultBackfillHorizon,
		HealthAddr:          DefaultHealthAddr,
		AlertCooldown:       duration{DefaultAlertCooldown},
		OutcomesSyncCron:    DefaultOutcomesSyncCron,
	}
}

// Validate checks that configuration values are within acceptable ranges.
func Validate(cfg Config) error {
	if cfg.LedgerPath == "" {
		return fmt.Errorf("ledger_path must not be empty")
	}
	if cfg.OutcomesPath == "" {
		return fmt.Errorf("outcomes_path must not be empty")
	}
	if cfg.Unit <= 0 {
		return fmt.Errorf("unit must be positive, got %f", cfg.Unit)
	}
	if cfg.RefreshInterval.Duration < time.Second {
		return fmt.Errorf("refresh_interval must be at least 1s, got %v", cfg.RefreshInterval.Duration)
	}
	if cfg.NoGamesTimeout < 0 {
		return fmt.Errorf("no_games_timeout must be non-negative, got %d", cfg.NoGamesTimeout)
	}
	if cfg.MarketSource != MarketSourceFile && cfg.MarketSource != MarketSourceGamma {
		return fmt.Errorf("market_source must be %q or %q, got %q", MarketSourceFile, MarketSourceGamma, cfg.MarketSource)
	}
	if cfg.RiskFreeRate < 0 || cfg.RiskFreeRate >= 1 {
		return fmt.Errorf("risk_free_rate must be in [0, 1), got %f", cfg.RiskFreeRate)
	}
	if cfg.BackfillHorizonDays < 1 {
		return fmt.Errorf("backfill_horizon_days must be at least 1, got %d", cfg.BackfillHorizonDays)
	}
	if cfg.AlertCooldown.Duration < 0 {
		return fmt.Errorf("alert_cooldown must be non-negative, got %v", cfg.AlertCooldown.Duration)
	}
	return nil
}
