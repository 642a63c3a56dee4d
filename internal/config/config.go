// Package config provides configuration management for the journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Journal   JournalConfig   `mapstructure:"journal"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	UI        UIConfig        `mapstructure:"ui"`
}

// JournalConfig holds journal-wide settings.
type JournalConfig struct {
	// BaseCurrency is the single reporting currency every trade's P&L is
	// normalized into for aggregate statistics.
	BaseCurrency string `mapstructure:"base_currency"`
	// Rates overrides the default conversion-rate table, keyed by currency
	// code. Rates are configuration constants, never fetched live.
	Rates map[string]float64 `mapstructure:"rates"`
}

// AnalyticsConfig holds the engine's tunable thresholds.
type AnalyticsConfig struct {
	StreakThreshold int     `mapstructure:"streak_threshold"`
	DailyLossLimitR float64 `mapstructure:"daily_loss_limit_r"`
	// DrawdownUnit is the base-currency scale of the setup-score drawdown
	// penalty. Adjust to the account size and currency in use.
	DrawdownUnit float64 `mapstructure:"drawdown_unit"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trade-journal"
	}
	return filepath.Join(home, ".config", "trade-journal")
}

// DefaultDBPath returns the default journal database path.
func DefaultDBPath() string {
	return filepath.Join(DefaultConfigDir(), "journal.db")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("journal.base_currency", "USD")
	v.SetDefault("analytics.streak_threshold", 3)
	v.SetDefault("analytics.daily_loss_limit_r", 3.0)
	v.SetDefault("analytics.drawdown_unit", 1000.0)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "2006-01-02")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		if err := createTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("creating config template: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRADE_JOURNAL_BASE_CURRENCY"); v != "" {
		cfg.Journal.BaseCurrency = v
	}
	if v := os.Getenv("TRADE_JOURNAL_STREAK_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analytics.StreakThreshold = n
		}
	}
	if v := os.Getenv("TRADE_JOURNAL_DAILY_LOSS_LIMIT_R"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Analytics.DailyLossLimitR = f
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Journal.BaseCurrency == "" {
		return fmt.Errorf("base_currency must not be empty")
	}
	if c.Analytics.StreakThreshold < 1 {
		return fmt.Errorf("streak_threshold must be at least 1")
	}
	if c.Analytics.DailyLossLimitR <= 0 {
		return fmt.Errorf("daily_loss_limit_r must be positive")
	}
	if c.Analytics.DrawdownUnit <= 0 {
		return fmt.Errorf("drawdown_unit must be positive")
	}
	for code, rate := range c.Journal.Rates {
		if rate <= 0 {
			return fmt.Errorf("rate for %s must be positive", code)
		}
	}
	return nil
}
