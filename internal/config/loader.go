package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load builds the configuration: defaults, then the TOML file at path
// (falling back to $BOT_CONFIG when path is empty; no file at all is
// fine), then .env, then BOT_* environment overrides. The result has not
// been validated; call Validate after Load.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path == "" {
		path = os.Getenv("BOT_CONFIG")
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	_ = godotenv.Load() // Ignore error if .env doesn't exist

	applyEnvOverrides(&cfg)

	return cfg, nil
}

// applyEnvOverrides overwrites Config fields from well-known environment
// variables when set, so operators can inject paths and secrets without
// touching the TOML file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.LedgerPath, "BOT_LEDGER_PATH")
	setStr(&cfg.OutcomesPath, "BOT_OUTCOMES_PATH")
	setStr(&cfg.AttemptsDBPath, "BOT_ATTEMPTS_DB_PATH")

	setFloat(&cfg.Unit, "BOT_UNIT")
	setBool(&cfg.DryRun, "BOT_DRY_RUN")
	setStringSlice(&cfg.Teams, "BOT_TEAMS")
	setDuration(&cfg.RefreshInterval, "BOT_REFRESH_INTERVAL")
	setInt(&cfg.NoGamesTimeout, "BOT_NO_GAMES_TIMEOUT")

	setStr(&cfg.MarketSource, "BOT_MARKET_SOURCE")
	setStr(&cfg.BookSnapshotPath, "BOT_BOOK_SNAPSHOT_PATH")
	setStr(&cfg.MarketSnapshotPath, "BOT_MARKET_SNAPSHOT_PATH")
	setStr(&cfg.GammaBaseURL, "BOT_GAMMA_BASE_URL")
	setStr(&cfg.ScoreboardURL, "BOT_SCOREBOARD_URL")
	setStr(&cfg.ResultsBaseURL, "BOT_RESULTS_BASE_URL")
	setStr(&cfg.ResultsAPIKey, "BALLDONTLIE_API_KEY")

	setFloat(&cfg.RiskFreeRate, "BOT_RISK_FREE_RATE")
	setStringSlice(&cfg.AnalysisIgnoreTeams, "BOT_IGNORE_TEAMS")
	setInt(&cfg.BackfillHorizonDays, "BOT_BACKFILL_HORIZON_DAYS")

	setStr(&cfg.HealthAddr, "BOT_HEALTH_ADDR")
	setStr(&cfg.DiscordWebhookURL, "BOT_DISCORD_WEBHOOK_URL")
	setDuration(&cfg.AlertCooldown, "BOT_ALERT_COOLDOWN")
	setStr(&cfg.OutcomesSyncCron, "BOT_OUTCOMES_SYNC_CRON")
}

// Typed env-var helpers. Each only mutates the target when the variable
// is present and parses.

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
