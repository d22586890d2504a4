package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{
	"BOT_CONFIG", "BOT_LEDGER_PATH", "BOT_OUTCOMES_PATH", "BOT_ATTEMPTS_DB_PATH",
	"BOT_UNIT", "BOT_DRY_RUN", "BOT_TEAMS", "BOT_REFRESH_INTERVAL",
	"BOT_NO_GAMES_TIMEOUT", "BOT_MARKET_SOURCE", "BOT_BOOK_SNAPSHOT_PATH",
	"BOT_MARKET_SNAPSHOT_PATH", "BOT_GAMMA_BASE_URL", "BOT_SCOREBOARD_URL",
	"BOT_RESULTS_BASE_URL", "BALLDONTLIE_API_KEY", "BOT_RISK_FREE_RATE",
	"BOT_IGNORE_TEAMS", "BOT_BACKFILL_HORIZON_DAYS", "BOT_HEALTH_ADDR",
	"BOT_DISCORD_WEBHOOK_URL", "BOT_ALERT_COOLDOWN", "BOT_OUTCOMES_SYNC_CRON",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LedgerPath != DefaultLedgerPath {
		t.Errorf("LedgerPath = %q, want %q", cfg.LedgerPath, DefaultLedgerPath)
	}
	if cfg.OutcomesPath != DefaultOutcomesPath {
		t.Errorf("OutcomesPath = %q, want %q", cfg.OutcomesPath, DefaultOutcomesPath)
	}
	if cfg.Unit != DefaultUnit {
		t.Errorf("Unit = %f, want %f", cfg.Unit, DefaultUnit)
	}
	if !cfg.DryRun {
		t.Error("DryRun should default to true")
	}
	if cfg.RefreshInterval.Duration != DefaultRefreshInterval {
		t.Errorf("RefreshInterval = %v, want %v", cfg.RefreshInterval.Duration, DefaultRefreshInterval)
	}
	if cfg.NoGamesTimeout != 0 {
		t.Errorf("NoGamesTimeout = %d, want 0 (run forever)", cfg.NoGamesTimeout)
	}
	if cfg.MarketSource != MarketSourceFile {
		t.Errorf("MarketSource = %q, want %q", cfg.MarketSource, MarketSourceFile)
	}
	if cfg.RiskFreeRate != DefaultRiskFreeRate {
		t.Errorf("RiskFreeRate = %f, want %f", cfg.RiskFreeRate, DefaultRiskFreeRate)
	}
	if cfg.AlertCooldown.Duration != DefaultAlertCooldown {
		t.Errorf("AlertCooldown = %v, want %v", cfg.AlertCooldown.Duration, DefaultAlertCooldown)
	}
	if len(cfg.Teams) != 0 {
		t.Errorf("Teams = %v, want empty", cfg.Teams)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

func TestLoadTOMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "bot.toml")
	raw := `
ledger_path = "tmp/wagers.csv"
unit = 0.5
dry_run = false
teams = ["Lakers", "Heat"]
refresh_interval = "30s"
market_source = "gamma"
no_games_timeout = 10
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LedgerPath != "tmp/wagers.csv" {
		t.Errorf("LedgerPath = %q, want tmp/wagers.csv", cfg.LedgerPath)
	}
	if cfg.Unit != 0.5 {
		t.Errorf("Unit = %f, want 0.5", cfg.Unit)
	}
	if cfg.DryRun {
		t.Error("DryRun should be false")
	}
	if len(cfg.Teams) != 2 || cfg.Teams[0] != "Lakers" || cfg.Teams[1] != "Heat" {
		t.Errorf("Teams = %v, want [Lakers Heat]", cfg.Teams)
	}
	if cfg.RefreshInterval.Duration != 30*time.Second {
		t.Errorf("RefreshInterval = %v, want 30s", cfg.RefreshInterval.Duration)
	}
	if cfg.MarketSource != MarketSourceGamma {
		t.Errorf("MarketSource = %q, want gamma", cfg.MarketSource)
	}
	if cfg.NoGamesTimeout != 10 {
		t.Errorf("NoGamesTimeout = %d, want 10", cfg.NoGamesTimeout)
	}

	// Untouched keys keep their defaults.
	if cfg.OutcomesPath != DefaultOutcomesPath {
		t.Errorf("OutcomesPath = %q, want default %q", cfg.OutcomesPath, DefaultOutcomesPath)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Load accepted a missing explicit config file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "bot.toml")
	if err := os.WriteFile(path, []byte("unit = 0.5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("BOT_UNIT", "2.5")
	t.Setenv("BOT_DRY_RUN", "false")
	t.Setenv("BOT_TEAMS", "Lakers, Nuggets")
	t.Setenv("BOT_REFRESH_INTERVAL", "90s")
	t.Setenv("BALLDONTLIE_API_KEY", "secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Unit != 2.5 {
		t.Errorf("Unit = %f, want env override 2.5", cfg.Unit)
	}
	if cfg.DryRun {
		t.Error("DryRun should be overridden to false")
	}
	if len(cfg.Teams) != 2 || cfg.Teams[0] != "Lakers" || cfg.Teams[1] != "Nuggets" {
		t.Errorf("Teams = %v, want [Lakers Nuggets]", cfg.Teams)
	}
	if cfg.RefreshInterval.Duration != 90*time.Second {
		t.Errorf("RefreshInterval = %v, want 90s", cfg.RefreshInterval.Duration)
	}
	if cfg.ResultsAPIKey != "secret" {
		t.Errorf("ResultsAPIKey = %q, want secret", cfg.ResultsAPIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty ledger path", func(c *Config) { c.LedgerPath = "" }, true},
		{"empty outcomes path", func(c *Config) { c.OutcomesPath = "" }, true},
		{"zero unit", func(c *Config) { c.Unit = 0 }, true},
		{"negative unit", func(c *Config) { c.Unit = -1 }, true},
		{"interval too short", func(c *Config) { c.RefreshInterval.Duration = 500 * time.Millisecond }, true},
		{"negative timeout", func(c *Config) { c.NoGamesTimeout = -1 }, true},
		{"unknown market source", func(c *Config) { c.MarketSource = "scrape" }, true},
		{"gamma market source", func(c *Config) { c.MarketSource = MarketSourceGamma }, false},
		{"risk free rate too high", func(c *Config) { c.RiskFreeRate = 1 }, true},
		{"zero horizon", func(c *Config) { c.BackfillHorizonDays = 0 }, true},
		{"negative cooldown", func(c *Config) { c.AlertCooldown.Duration = -time.Minute }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
