// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"trade-journal/internal/analytics"
	"trade-journal/internal/currency"
	"trade-journal/internal/logging"
	"trade-journal/internal/models"
	"trade-journal/internal/store"
)

// addJournalCommands adds journal commands.
func addJournalCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Trading journal management",
		Long:  "Record, list, and manage journaled trades.",
	}

	cmd.AddCommand(newJournalAddCmd(app))
	cmd.AddCommand(newJournalListCmd(app))
	cmd.AddCommand(newJournalTodayCmd(app))
	cmd.AddCommand(newJournalDeleteCmd(app))
	cmd.AddCommand(newJournalImportCmd(app))
	cmd.AddCommand(newJournalExportCmd(app))

	rootCmd.AddCommand(cmd)
}

func newJournalAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a closed trade",
		Long: `Record a closed trade in the journal.

P&L is entered in the trade's own currency; the base-currency conversion
is captured now, at recording time, and never recomputed later.`,
		Example: `  journal add --symbol EURUSD --setup "Breakout" --pnl 120 --r 1.5 --stop 1.0840 --qty 10000
  journal add --symbol NIFTY --setup "ORB" --pnl -45 --r -1 --currency INR --stop 22100 --qty 50 --rules=false --violations CHASED_ENTRY`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized.")
				return fmt.Errorf("store not initialized")
			}

			trade, err := tradeFromFlags(cmd, app)
			if err != nil {
				output.Error("Invalid trade: %v", err)
				return err
			}

			if err := app.Store.SaveTrade(ctx, trade); err != nil {
				output.Error("Failed to save trade: %v", err)
				return err
			}

			logging.LogTradeSaved(app.Logger, trade.ID, trade.Symbol, trade.SetupName, trade.PnL)
			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Trade %s recorded", trade.ID)
			output.Printf("  %s  %s  %s  P&L %s  %s\n",
				FormatDate(trade.Date), trade.Symbol, trade.Direction,
				output.FormatPnL(trade.PnL), output.FormatR(trade.RFactor))
			return nil
		},
	}

	cmd.Flags().String("date", "", "trade date YYYY-MM-DD (default: today)")
	cmd.Flags().String("entry-time", "", "entry time-of-day HH:MM (24h)")
	cmd.Flags().String("exit-time", "", "exit time-of-day HH:MM (24h)")
	cmd.Flags().String("symbol", "", "traded symbol (required)")
	cmd.Flags().String("setup", "", "setup name")
	cmd.Flags().String("type", string(models.TypeIntraday), "trade type (INTRADAY, SWING, SCALPING, POSITIONAL)")
	cmd.Flags().String("direction", string(models.DirectionBuy), "position direction (BUY, SELL)")
	cmd.Flags().Float64("entry", 0, "entry price")
	cmd.Flags().Float64("exit", 0, "exit price")
	cmd.Flags().Float64("stop", 0, "stop-loss price (required)")
	cmd.Flags().Int("qty", 0, "quantity (required)")
	cmd.Flags().Float64("pnl", 0, "net P&L in the trade currency")
	cmd.Flags().String("currency", "", "trade currency code (default: base currency)")
	cmd.Flags().Float64("rate", 0, "exchange rate to base currency (default: from rate table)")
	cmd.Flags().Float64("r", 0, "risk multiple; sign follows P&L")
	cmd.Flags().Bool("rules", true, "whether the trading rules were followed")
	cmd.Flags().StringSlice("violations", nil, "violation tags (e.g. MOVED_STOP,OVERSIZED_POSITION)")
	cmd.Flags().String("session", "", "market session tag (default: detected from entry time)")
	cmd.Flags().String("condition", "", "market condition tag")
	cmd.Flags().String("emotion-entry", "", "emotion at entry")
	cmd.Flags().String("emotion-exit", "", "emotion at exit")
	cmd.Flags().String("mistake", "", "mistake tag")
	cmd.MarkFlagRequired("symbol")
	cmd.MarkFlagRequired("stop")
	cmd.MarkFlagRequired("qty")

	return cmd
}

// tradeFromFlags builds and normalizes a trade from the add command flags.
func tradeFromFlags(cmd *cobra.Command, app *App) (*models.Trade, error) {
	dateStr, _ := cmd.Flags().GetString("date")
	date := time.Now()
	if dateStr != "" {
		parsed, err := ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		date = parsed
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	symbol, _ := cmd.Flags().GetString("symbol")
	setup, _ := cmd.Flags().GetString("setup")
	tradeType, _ := cmd.Flags().GetString("type")
	direction, _ := cmd.Flags().GetString("direction")
	entryTime, _ := cmd.Flags().GetString("entry-time")
	exitTime, _ := cmd.Flags().GetString("exit-time")
	stop, _ := cmd.Flags().GetFloat64("stop")
	qty, _ := cmd.Flags().GetInt("qty")
	pnl, _ := cmd.Flags().GetFloat64("pnl")
	code, _ := cmd.Flags().GetString("currency")
	rate, _ := cmd.Flags().GetFloat64("rate")
	rFactor, _ := cmd.Flags().GetFloat64("r")
	session, _ := cmd.Flags().GetString("session")
	condition, _ := cmd.Flags().GetString("condition")
	emotionEntry, _ := cmd.Flags().GetString("emotion-entry")
	emotionExit, _ := cmd.Flags().GetString("emotion-exit")
	mistake, _ := cmd.Flags().GetString("mistake")
	violationStrs, _ := cmd.Flags().GetStringSlice("violations")

	if code == "" {
		code = app.Config.Journal.BaseCurrency
	}
	if rate <= 0 {
		if code == app.Config.Journal.BaseCurrency {
			rate = 1
		} else {
			rate = currency.RateFor(code)
		}
	}

	// Sign normalization happens here, at creation time: analytics assumes
	// the r-factor sign already agrees with P&L.
	if (pnl > 0 && rFactor < 0) || (pnl < 0 && rFactor > 0) {
		rFactor = -rFactor
	}

	// Capture the close-time base conversion once; it is immutable after.
	pnlBase := pnl * rate

	if session == "" && entryTime != "" {
		session = string(analytics.DetectSession(entryTime))
	}

	trade := &models.Trade{
		ID:              uuid.NewString(),
		Date:            date,
		EntryTime:       entryTime,
		ExitTime:        exitTime,
		Symbol:          symbol,
		SetupName:       setup,
		Type:            models.TradeType(tradeType),
		Direction:       models.Direction(direction),
		StopLoss:        stop,
		Quantity:        qty,
		PnL:             pnl,
		Currency:        code,
		PnLBase:         &pnlBase,
		ExchangeRate:    rate,
		RFactor:         rFactor,
		Session:         models.Session(session),
		MarketCondition: models.MarketCondition(condition),
		EmotionEntry:    models.Emotion(emotionEntry),
		EmotionExit:     models.Emotion(emotionExit),
		MistakeTag:      mistake,
	}
	if entry, _ := cmd.Flags().GetFloat64("entry"); entry > 0 {
		trade.EntryPrice = &entry
	}
	if exit, _ := cmd.Flags().GetFloat64("exit"); exit > 0 {
		trade.ExitPrice = &exit
	}
	if cmd.Flags().Changed("rules") {
		rules, _ := cmd.Flags().GetBool("rules")
		trade.RuleFollowed = &rules
	}
	for _, v := range violationStrs {
		trade.RuleViolations = append(trade.RuleViolations, models.Violation(v))
	}
	return trade, nil
}

func newJournalListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journaled trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized. No trade data available.")
				return nil
			}

			filter, err := filterFromFlags(cmd)
			if err != nil {
				return err
			}
			trades, err := app.Store.GetTrades(ctx, filter)
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Info("No trades found.")
				return nil
			}

			table := NewTable(output, "Date", "ID", "Symbol", "Setup", "Dir", "P&L", "R", "Session")
			for _, t := range trades {
				table.AddRow(
					FormatDate(t.Date),
					TruncateString(t.ID, 8),
					t.Symbol,
					TruncateString(t.SetupName, 15),
					string(t.Direction),
					output.FormatPnL(currency.BasePnL(t)),
					output.FormatR(t.RFactor),
					string(t.Session),
				)
			}
			table.Render()
			output.Printf("\n%d trades\n", len(trades))
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "filter by symbol")
	cmd.Flags().String("setup", "", "filter by setup name")
	cmd.Flags().String("from", "", "start date YYYY-MM-DD")
	cmd.Flags().String("to", "", "end date YYYY-MM-DD")
	cmd.Flags().Int("limit", 0, "maximum number of trades")
	return cmd
}

// filterFromFlags builds a store filter from the shared list/report flags.
func filterFromFlags(cmd *cobra.Command) (store.TradeFilter, error) {
	filter := store.TradeFilter{}
	if symbol, _ := cmd.Flags().GetString("symbol"); symbol != "" {
		filter.Symbol = symbol
	}
	if setup, _ := cmd.Flags().GetString("setup"); setup != "" {
		filter.Setup = setup
	}
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		date, err := ParseDate(from)
		if err != nil {
			return filter, err
		}
		filter.StartDate = date
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		date, err := ParseDate(to)
		if err != nil {
			return filter, err
		}
		filter.EndDate = date
	}
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		filter.Limit = limit
	}
	return filter, nil
}

func newJournalTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's journal",
		Long:  "Display today's trades, running total, and tilt status.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized. No trade data available.")
				return nil
			}

			now := time.Now()
			startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			endOfDay := startOfDay.Add(24 * time.Hour)

			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{
				StartDate: startOfDay,
				EndDate:   endOfDay,
			})
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			output.Bold("Trading Journal - %s", FormatDate(now))
			output.Println()

			if len(trades) == 0 {
				output.Info("No trades recorded today.")
				return nil
			}

			var totalPnL float64
			var wins int
			table := NewTable(output, "Time", "Symbol", "Setup", "P&L", "R")
			for _, t := range trades {
				pnl := currency.BasePnL(t)
				totalPnL += pnl
				if t.IsWin() {
					wins++
				}
				table.AddRow(t.EntryTime, t.Symbol, TruncateString(t.SetupName, 15),
					output.FormatPnL(pnl), output.FormatR(t.RFactor))
			}
			table.Render()

			output.Println()
			output.Printf("  Trades:    %d (%d wins)\n", len(trades), wins)
			output.Printf("  Net P&L:   %s\n", output.FormatPnL(totalPnL))

			// All history feeds the streak; today's trades feed the limit.
			all, err := app.Store.GetTrades(ctx, store.TradeFilter{})
			if err == nil {
				tilt := analytics.DetectTilt(all, app.AnalyticsConfig().Tilt, now)
				output.Println()
				for _, alert := range tilt.Alerts {
					output.Warning("  %s", alert)
				}
				output.Printf("  %s\n", tilt.Recommendation)
			}
			return nil
		},
	}
}

func newJournalDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a journaled trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized.")
				return fmt.Errorf("store not initialized")
			}
			if err := app.Store.DeleteTrade(ctx, args[0]); err != nil {
				output.Error("Failed to delete trade: %v", err)
				return err
			}
			output.Success("✓ Trade %s deleted", args[0])
			return nil
		},
	}
}
