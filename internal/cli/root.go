// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trade-journal/internal/analytics"
	"trade-journal/internal/config"
	"trade-journal/internal/currency"
	"trade-journal/internal/logging"
	"trade-journal/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2024-01-01"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.DataStore
}

// AnalyticsConfig translates the loaded configuration into engine
// parameters.
func (a *App) AnalyticsConfig() analytics.Config {
	cfg := analytics.DefaultConfig()
	if a.Config != nil {
		if a.Config.Analytics.StreakThreshold > 0 {
			cfg.Tilt.StreakThreshold = a.Config.Analytics.StreakThreshold
		}
		if a.Config.Analytics.DailyLossLimitR > 0 {
			cfg.Tilt.DailyLossLimitR = a.Config.Analytics.DailyLossLimitR
		}
		if a.Config.Analytics.DrawdownUnit > 0 {
			cfg.Score.DrawdownUnit = a.Config.Analytics.DrawdownUnit
		}
	}
	return cfg
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Install configured exchange-rate overrides before any analysis runs.
	if cfg != nil && len(cfg.Journal.Rates) > 0 {
		currency.Configure(cfg.Journal.Rates)
	}

	dataStore, err := store.NewSQLiteStore(config.DefaultDBPath())
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, some features may be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Trade Journal - trading journal and analytics CLI",
		Long: `Trade Journal is a personal trading-journal CLI.

Log closed trades, then analyze expectancy, R-multiple distribution,
setup quality, rule discipline, session performance, loss streaks, and
drawdowns over your full trade history.

Use 'journal help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/trade-journal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addJournalCommands(rootCmd, app)
	addReportCommands(rootCmd, app)
	addAnalyzeCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Trade Journal v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Bold("Journal")
			output.Printf("  Base Currency:      %s\n", app.Config.Journal.BaseCurrency)
			output.Bold("Analytics")
			output.Printf("  Streak Threshold:   %d\n", app.Config.Analytics.StreakThreshold)
			output.Printf("  Daily Loss Limit:   %.1fR\n", app.Config.Analytics.DailyLossLimitR)
			output.Printf("  Drawdown Unit:      %.0f\n", app.Config.Analytics.DrawdownUnit)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}
