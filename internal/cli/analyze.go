// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"trade-journal/internal/analytics"
	"trade-journal/internal/logging"
	"trade-journal/internal/models"
	"trade-journal/pkg/utils"
)

// addAnalyzeCommands adds the analysis commands.
func addAnalyzeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Journal analytics",
		Long:  "Setup quality, session and rule analysis, drawdowns, and tilt detection.",
	}

	cmd.AddCommand(newAnalyzeSetupsCmd(app))
	cmd.AddCommand(newAnalyzeSessionsCmd(app))
	cmd.AddCommand(newAnalyzeHoursCmd(app))
	cmd.AddCommand(newAnalyzeRulesCmd(app))
	cmd.AddCommand(newAnalyzeDrawdownCmd(app))
	cmd.AddCommand(newAnalyzeTiltCmd(app))
	cmd.AddCommand(newAnalyzeMarketCmd(app))
	cmd.AddCommand(newAnalyzeSummaryCmd(app))

	rootCmd.AddCommand(cmd)
}

// analyzeTrades loads the trades selected by the shared filter flags.
func analyzeTrades(cmd *cobra.Command, app *App, output *Output) ([]models.Trade, error) {
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

func newAnalyzeSetupsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setups",
		Short: "Rank setups by quality score",
		Long: `Score every setup by risk-adjusted quality and rank them.

The score rewards a high win rate and large average R, and penalizes
setups whose equity path carries deep drawdowns.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := analyzeTrades(cmd, app, output)
			if err != nil || trades == nil {
				return err
			}

			start := time.Now()
			scores := analytics.ScoreSetups(trades, app.AnalyticsConfig().Score)
			logging.LogAnalysis(app.Logger, "setups", len(trades), time.Since(start))
			if output.IsJSON() {
				return output.JSON(scores)
			}

			if len(scores) == 0 {
				output.Info("No setups to score.")
				return nil
			}
			output.Bold("Setup Quality Ranking")
			output.Println()
			table := NewTable(output, "#", "Setup", "Trades", "Win%", "MeanR", "MaxDD", "Score", "Action")
			for _, s := range scores {
				table.AddRow(
					formatInt(s.Rank),
					TruncateString(s.Setup, 20),
					formatInt(s.Trades),
					formatPct(s.Expectancy.WinRate),
					output.FormatR(s.RStats.Mean),
					utils.FormatMoney(s.MaxDrawdown),
					formatFloat(s.Score),
					string(s.Recommendation),
				)
			}
			table.Render()
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func newAnalyzeSessionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Performance by market session",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := analyzeTrades(cmd, app, output)
			if err != nil || trades == nil {
				return err
			}

			analysis := analytics.AnalyzeSessions(trades)
			if output.IsJSON() {
				return output.JSON(analysis)
			}

			output.Bold("Session Performance")
			output.Println()
			table := NewTable(output, "Session", "Trades", "Win%", "Total P&L", "ExpR")
			for _, s := range analysis.Sessions {
				table.AddRow(
					string(s.Session),
					formatInt(s.Trades),
					formatPct(s.WinRate),
					output.FormatPnL(s.TotalPnL),
					output.FormatR(s.ExpectancyR),
				)
			}
			table.Render()
			if analysis.Best != "" {
				output.Println()
				output.Printf("  Best:  %s\n", output.Green(string(analysis.Best)))
				output.Printf("  Worst: %s\n", output.Red(string(analysis.Worst)))
			}
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func newAnalyzeHoursCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Performance by hour of day",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := analyzeTrades(cmd, app, output)
			if err != nil || trades == nil {
				return err
			}

			hours := analytics.AnalyzeHours(trades)
			if output.IsJSON() {
				return output.JSON(hours)
			}

			output.Bold("Hourly Performance")
			output.Println()
			table := NewTable(output, "Hour", "Trades", "Win%", "Total P&L", "AvgR")
			for _, h := range hours {
				if h.Trades == 0 {
					continue
				}
				table.AddRow(
					h.Label,
					formatInt(h.Trades),
					formatPct(h.WinRate),
					output.FormatPnL(h.TotalPnL),
					output.FormatR(h.AvgR),
				)
			}
			table.Render()
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func newAnalyzeRulesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Discipline and rule-break impact",
		Long: `Compare trades taken inside the plan against trades that broke it,
and rank violation tags by the damage they caused.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := analyzeTrades(cmd, app, output)
			if err != nil || trades == nil {
				return err
			}

			analysis := analytics.AnalyzeRuleBreaks(trades)
			if output.IsJSON() {
				return output.JSON(analysis)
			}

			output.Bold("Rule Discipline")
			output.Println()
			table := NewTable(output, "Group", "Trades", "Win%", "Total P&L", "AvgR")
			table.AddRow("Followed",
				formatInt(analysis.Followed.Trades),
				formatPct(analysis.Followed.WinRate),
				output.FormatPnL(analysis.Followed.TotalPnL),
				output.FormatR(analysis.Followed.AvgR))
			table.AddRow("Broken",
				formatInt(analysis.Broken.Trades),
				formatPct(analysis.Broken.WinRate),
				output.FormatPnL(analysis.Broken.TotalPnL),
				output.FormatR(analysis.Broken.AvgR))
			table.Render()

			if len(analysis.Violations) > 0 {
				output.Println()
				output.Bold("Costliest Violations")
				output.Println()
				vt := NewTable(output, "Violation", "Count", "Total P&L", "AvgR")
				for _, v := range analysis.Violations {
					vt.AddRow(string(v.Violation), formatInt(v.Count),
						output.FormatPnL(v.TotalPnL), output.FormatR(v.AvgR))
				}
				vt.Render()
			}
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func newAnalyzeDrawdownCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drawdown",
		Short: "Drawdown periods and equity curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := analyzeTrades(cmd, app, output)
			if err != nil || trades == nil {
				return err
			}

			analysis := analytics.AnalyzeDrawdowns(trades)
			if output.IsJSON() {
				return output.JSON(analysis)
			}

			output.Bold("Drawdown Analysis")
			output.Println()
			output.Printf("  Max drawdown:     %s (%s)\n",
				utils.FormatMoney(analysis.MaxDrawdown), output.FormatR(-analysis.MaxDrawdownR))
			output.Printf("  Current drawdown: %s\n", utils.FormatMoney(analysis.CurrentDrawdown))
			if analysis.CurrentDrawdown > 0 {
				output.Warning("  Currently below the equity peak.")
			}

			if len(analysis.Periods) > 0 {
				output.Println()
				table := NewTable(output, "Start", "End", "Depth", "R", "Trades")
				for _, p := range analysis.Periods {
					end := "ongoing"
					if !p.End.IsZero() {
						end = FormatDate(p.End)
					}
					table.AddRow(
						FormatDate(p.Start), end,
						utils.FormatMoney(p.Magnitude),
						output.FormatR(p.RDrawdown),
						formatInt(p.Trades),
					)
				}
				table.Render()
			}
			for _, insight := range analysis.Insights {
				output.Info("  %s", insight)
			}
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func newAnalyzeTiltCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tilt",
		Short: "Loss-streak and tilt check",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := analyzeTrades(cmd, app, output)
			if err != nil || trades == nil {
				return err
			}

			alert := analytics.DetectTilt(trades, app.AnalyticsConfig().Tilt, time.Now())
			if output.IsJSON() {
				return output.JSON(alert)
			}

			output.Bold("Tilt Check")
			output.Println()
			output.Printf("  Current streak:  %d consecutive losses\n", alert.CurrentStreak)
			output.Printf("  Longest streak:  %d\n", alert.MaxStreak)
			output.Printf("  Today's loss:    %s\n", output.FormatR(-alert.DailyLossR))
			output.Println()
			for _, a := range alert.Alerts {
				output.Warning("  %s", a)
			}
			if alert.OnTilt {
				output.Error("  %s", alert.Recommendation)
			} else {
				output.Info("  %s", alert.Recommendation)
			}
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func newAnalyzeMarketCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Performance by market condition",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := analyzeTrades(cmd, app, output)
			if err != nil || trades == nil {
				return err
			}

			conditions := analytics.AnalyzeMarketConditions(trades)
			if output.IsJSON() {
				return output.JSON(conditions)
			}

			output.Bold("Market Condition Performance")
			output.Println()
			table := NewTable(output, "Condition", "Trades", "Win%", "Total P&L", "ExpR")
			for _, c := range conditions {
				table.AddRow(
					string(c.Condition),
					formatInt(c.Trades),
					formatPct(c.WinRate),
					output.FormatPnL(c.TotalPnL),
					output.FormatR(c.ExpectancyR),
				)
			}
			table.Render()
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func newAnalyzeSummaryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Full analytics summary",
		Long:  "Run every analysis over the selected trades and print the combined picture.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := analyzeTrades(cmd, app, output)
			if err != nil || trades == nil {
				return err
			}

			start := time.Now()
			summary := analytics.Summarize(trades, app.AnalyticsConfig(), time.Now())
			logging.LogAnalysis(app.Logger, "summary", len(trades), time.Since(start))
			if output.IsJSON() {
				return output.JSON(summary)
			}

			output.Bold("Journal Summary")
			output.Println()
			renderExpectancy(output, summary.Expectancy)

			if len(summary.Setups) > 0 {
				output.Println()
				output.Bold("Top Setups")
				output.Println()
				limit := 3
				if len(summary.Setups) < limit {
					limit = len(summary.Setups)
				}
				for _, s := range summary.Setups[:limit] {
					output.Printf("  %d. %s  score %s  (%d trades, %s)\n",
						s.Rank, s.Setup, formatFloat(s.Score),
						s.Trades, string(s.Recommendation))
				}
			}

			output.Println()
			output.Printf("  Max drawdown: %s   On tilt: %t\n",
				utils.FormatMoney(summary.Drawdown.MaxDrawdown), summary.Tilt.OnTilt)

			if len(summary.Insights) > 0 {
				output.Println()
				output.Bold("Insights")
				output.Println()
				for _, insight := range summary.Insights {
					output.Printf("  • %s\n", insight)
				}
			}
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}
