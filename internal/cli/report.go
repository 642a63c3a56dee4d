// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"context"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"trade-journal/internal/analytics"
	jerrors "trade-journal/internal/errors"
	"trade-journal/internal/logging"
	"trade-journal/internal/models"
)

// addReportCommands adds performance report commands.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Performance reports",
		Long:  "Expectancy and R-multiple reports over the journaled trades.",
	}

	cmd.AddCommand(newReportExpectancyCmd(app))
	cmd.AddCommand(newReportRMultiplesCmd(app))

	rootCmd.AddCommand(cmd)
}

// reportTrades loads the trades selected by the shared filter flags.
func reportTrades(cmd *cobra.Command, app *App, output *Output) ([]models.Trade, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if app.Store == nil {
		output.Warning("Store not initialized. No trade data available.")
		return nil, nil
	}
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	trades, err := app.Store.GetTrades(ctx, filter)
	if err != nil {
		output.Error("Failed to fetch trades: %v", err)
		return nil, err
	}
	return trades, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("symbol", "", "filter by symbol")
	cmd.Flags().String("setup", "", "filter by setup name")
	cmd.Flags().String("from", "", "start date YYYY-MM-DD")
	cmd.Flags().String("to", "", "end date YYYY-MM-DD")
	cmd.Flags().Int("limit", 0, "maximum number of trades")
}

func newReportExpectancyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expectancy",
		Short: "Expectancy report",
		Long: `Report expectancy per trade, in base currency and in R.

With --by, the report is broken down by setup, symbol, type, session,
or condition.`,
		Example: `  journal report expectancy
  journal report expectancy --by setup --from 2026-01-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := reportTrades(cmd, app, output)
			if err != nil || trades == nil {
				return err
			}

			start := time.Now()
			by, _ := cmd.Flags().GetString("by")
			if by == "" {
				result := analytics.Expectancy(trades)
				profit := analytics.Profit(trades)
				logging.LogAnalysis(app.Logger, "expectancy", len(trades), time.Since(start))
				if output.IsJSON() {
					return output.JSON(map[string]any{
						"expectancy": result,
						"profit":     profit,
					})
				}
				renderExpectancy(output, result)
				renderProfit(output, profit)
				return nil
			}

			key, err := groupKeyFor(by)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			results := analytics.ExpectancyBy(trades, key)
			logging.LogAnalysis(app.Logger, "expectancy_by_"+by, len(trades), time.Since(start))
			if output.IsJSON() {
				return output.JSON(results)
			}

			names := make([]string, 0, len(results))
			for name := range results {
				names = append(names, name)
			}
			sort.Strings(names)

			output.Bold("Expectancy by %s", by)
			output.Println()
			table := NewTable(output, by, "Trades", "Win%", "Expectancy", "ExpR")
			for _, name := range names {
				r := results[name]
				table.AddRow(
					TruncateString(name, 20),
					formatInt(r.TotalTrades),
					formatPct(r.WinRate),
					output.FormatPnL(r.Expectancy),
					output.FormatR(r.ExpectancyR),
				)
			}
			table.Render()
			return nil
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().String("by", "", "breakdown dimension (setup, symbol, type, session, condition)")
	return cmd
}

func renderExpectancy(output *Output, r analytics.ExpectancyResult) {
	output.Bold("Expectancy Report")
	output.Println()
	output.Printf("  Trades:       %d (%d W / %d L / %d BE)\n",
		r.TotalTrades, r.Wins, r.Losses, r.BreakEvens)
	output.Printf("  Win rate:     %s\n", formatPct(r.WinRate))
	output.Printf("  Avg win:      %s (%s)\n", output.FormatPnL(r.AvgWin), output.FormatR(r.AvgWinR))
	output.Printf("  Avg loss:     %s (%s)\n", output.FormatPnL(-r.AvgLoss), output.FormatR(-r.AvgLossR))
	output.Printf("  Expectancy:   %s per trade (%s)\n",
		output.FormatPnL(r.Expectancy), output.FormatR(r.ExpectancyR))
	output.Println()
	switch r.Interpretation {
	case analytics.InterpretationProfitable:
		output.Success("  Edge is positive.")
	case analytics.InterpretationLosing:
		output.Warning("  Edge is negative.")
	default:
		output.Info("  Roughly break-even.")
	}
}

func renderProfit(output *Output, p analytics.ProfitSummary) {
	output.Println()
	output.Printf("  Gross profit:  %s   Gross loss: %s\n",
		output.FormatPnL(p.GrossProfit), output.FormatPnL(-p.GrossLoss))
	if p.ProfitFactor > 0 {
		output.Printf("  Profit factor: %s\n", formatFloat(p.ProfitFactor))
	}
	output.Printf("  Largest win:   %s   Largest loss: %s\n",
		output.FormatPnL(p.LargestWin), output.FormatPnL(-p.LargestLoss))
}

func newReportRMultiplesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "r",
		Short: "R-multiple distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := reportTrades(cmd, app, output)
			if err != nil || trades == nil {
				return err
			}

			stats := analytics.RMultiples(trades)
			if output.IsJSON() {
				return output.JSON(stats)
			}

			output.Bold("R-Multiple Distribution")
			output.Println()
			output.Printf("  Count:   %d\n", stats.Count)
			output.Printf("  Mean:    %s   Median: %s\n",
				output.FormatR(stats.Mean), output.FormatR(stats.Median))
			output.Printf("  Best:    %s   Worst:  %s\n",
				output.FormatR(stats.Max), output.FormatR(stats.Min))
			output.Printf("  >= 2R:   %s   >= 3R:  %s\n",
				formatPct(stats.PctAtLeast2R), formatPct(stats.PctAtLeast3R))
			output.Printf("  Losses 1R-2R: %s   beyond 2R: %s\n",
				formatPct(stats.PctLoss1To2R), formatPct(stats.PctLossOver2R))
			output.Println()

			table := NewTable(output, "Bucket", "Count", "%")
			for _, b := range stats.Buckets {
				table.AddRow(b.Label, formatInt(b.Count), formatPct(b.Percent))
			}
			table.Render()
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

// groupKeyFor maps a --by flag value to a grouping key extractor.
func groupKeyFor(by string) (func(models.Trade) string, error) {
	switch by {
	case "setup":
		return analytics.BySetup, nil
	case "symbol":
		return analytics.BySymbol, nil
	case "type":
		return analytics.ByType, nil
	case "session":
		return analytics.BySession, nil
	case "condition":
		return analytics.ByMarketCondition, nil
	default:
		return nil, &jerrors.ValidationError{
			Field:   "by",
			Value:   by,
			Message: "must be one of setup, symbol, type, session, condition",
		}
	}
}
