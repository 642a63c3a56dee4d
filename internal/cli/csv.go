package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	jerrors "trade-journal/internal/errors"
	"trade-journal/internal/logging"
	"trade-journal/internal/models"
)

// tradeRow is the flat CSV representation of a trade. Optional columns are
// left empty rather than zero-filled so exported files round-trip cleanly.
type tradeRow struct {
	ID              string  `csv:"id"`
	Date            string  `csv:"date"`
	EntryTime       string  `csv:"entry_time"`
	ExitTime        string  `csv:"exit_time"`
	Symbol          string  `csv:"symbol"`
	Setup           string  `csv:"setup"`
	Type            string  `csv:"type"`
	Direction       string  `csv:"direction"`
	EntryPrice      string  `csv:"entry_price"`
	ExitPrice       string  `csv:"exit_price"`
	StopLoss        float64 `csv:"stop_loss"`
	Quantity        int     `csv:"quantity"`
	PnL             float64 `csv:"pnl"`
	Currency        string  `csv:"currency"`
	PnLBase         string  `csv:"pnl_base"`
	ExchangeRate    float64 `csv:"exchange_rate"`
	RFactor         float64 `csv:"r_factor"`
	RuleFollowed    string  `csv:"rule_followed"`
	Violations      string  `csv:"violations"`
	Session         string  `csv:"session"`
	MarketCondition string  `csv:"market_condition"`
	EmotionEntry    string  `csv:"emotion_entry"`
	EmotionExit     string  `csv:"emotion_exit"`
	MistakeTag      string  `csv:"mistake_tag"`
}

func rowFromTrade(t models.Trade) tradeRow {
	row := tradeRow{
		ID:              t.ID,
		Date:            t.Date.Format("2006-01-02"),
		EntryTime:       t.EntryTime,
		ExitTime:        t.ExitTime,
		Symbol:          t.Symbol,
		Setup:           t.SetupName,
		Type:            string(t.Type),
		Direction:       string(t.Direction),
		StopLoss:        t.StopLoss,
		Quantity:        t.Quantity,
		PnL:             t.PnL,
		Currency:        t.Currency,
		ExchangeRate:    t.ExchangeRate,
		RFactor:         t.RFactor,
		Session:         string(t.Session),
		MarketCondition: string(t.MarketCondition),
		EmotionEntry:    string(t.EmotionEntry),
		EmotionExit:     string(t.EmotionExit),
		MistakeTag:      t.MistakeTag,
	}
	if t.EntryPrice != nil {
		row.EntryPrice = fmt.Sprintf("%g", *t.EntryPrice)
	}
	if t.ExitPrice != nil {
		row.ExitPrice = fmt.Sprintf("%g", *t.ExitPrice)
	}
	if t.PnLBase != nil {
		row.PnLBase = fmt.Sprintf("%g", *t.PnLBase)
	}
	if t.RuleFollowed != nil {
		row.RuleFollowed = fmt.Sprintf("%t", *t.RuleFollowed)
	}
	if len(t.RuleViolations) > 0 {
		tags := make([]string, len(t.RuleViolations))
		for i, v := range t.RuleViolations {
			tags[i] = string(v)
		}
		row.Violations = strings.Join(tags, ";")
	}
	return row
}

func (row tradeRow) toTrade() (*models.Trade, error) {
	date, err := time.Parse("2006-01-02", row.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", row.Date, err)
	}
	trade := &models.Trade{
		ID:              row.ID,
		Date:            date,
		EntryTime:       row.EntryTime,
		ExitTime:        row.ExitTime,
		Symbol:          row.Symbol,
		SetupName:       row.Setup,
		Type:            models.TradeType(row.Type),
		Direction:       models.Direction(row.Direction),
		StopLoss:        row.StopLoss,
		Quantity:        row.Quantity,
		PnL:             row.PnL,
		Currency:        row.Currency,
		ExchangeRate:    row.ExchangeRate,
		RFactor:         row.RFactor,
		Session:         models.Session(row.Session),
		MarketCondition: models.MarketCondition(row.MarketCondition),
		EmotionEntry:    models.Emotion(row.EmotionEntry),
		EmotionExit:     models.Emotion(row.EmotionExit),
		MistakeTag:      row.MistakeTag,
	}
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}
	if row.EntryPrice != "" {
		v, err := parseFloat(row.EntryPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid entry_price %q: %w", row.EntryPrice, err)
		}
		trade.EntryPrice = &v
	}
	if row.ExitPrice != "" {
		v, err := parseFloat(row.ExitPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid exit_price %q: %w", row.ExitPrice, err)
		}
		trade.ExitPrice = &v
	}
	if row.PnLBase != "" {
		v, err := parseFloat(row.PnLBase)
		if err != nil {
			return nil, fmt.Errorf("invalid pnl_base %q: %w", row.PnLBase, err)
		}
		trade.PnLBase = &v
	}
	switch strings.ToLower(row.RuleFollowed) {
	case "":
	case "true", "yes", "1":
		yes := true
		trade.RuleFollowed = &yes
	case "false", "no", "0":
		no := false
		trade.RuleFollowed = &no
	default:
		return nil, fmt.Errorf("invalid rule_followed %q", row.RuleFollowed)
	}
	if row.Violations != "" {
		for _, tag := range strings.Split(row.Violations, ";") {
			if tag = strings.TrimSpace(tag); tag != "" {
				trade.RuleViolations = append(trade.RuleViolations, models.Violation(tag))
			}
		}
	}
	return trade, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func newJournalImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import trades from a CSV file",
		Long: `Import trades from a CSV file.

Each row is validated before saving. Rows that fail validation are reported
with their row number and skipped; valid rows are still imported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized.")
				return fmt.Errorf("store not initialized")
			}

			file, err := os.Open(args[0])
			if err != nil {
				output.Error("Failed to open %s: %v", args[0], err)
				return err
			}
			defer file.Close()

			var rows []tradeRow
			if err := gocsv.UnmarshalFile(file, &rows); err != nil {
				output.Error("Failed to parse CSV: %v", err)
				return err
			}

			var imported, skipped int
			var rowErrs []jerrors.ImportError
			for i, row := range rows {
				// Row 1 is the header line.
				rowNum := i + 2
				trade, err := row.toTrade()
				if err != nil {
					rowErrs = append(rowErrs, jerrors.ImportError{Row: rowNum, TradeID: row.ID, Err: err})
					skipped++
					continue
				}
				if err := app.Store.SaveTrade(ctx, trade); err != nil {
					rowErrs = append(rowErrs, jerrors.ImportError{Row: rowNum, TradeID: trade.ID, Err: err})
					skipped++
					continue
				}
				imported++
			}

			logging.LogImport(app.Logger, args[0], imported, skipped)
			if output.IsJSON() {
				return output.JSON(map[string]any{
					"imported": imported,
					"skipped":  skipped,
				})
			}
			output.Success("✓ Imported %d trades from %s", imported, args[0])
			for _, e := range rowErrs {
				output.Warning("  row %d: %v", e.Row, e.Err)
			}
			if skipped > 0 {
				output.Warning("Skipped %d invalid rows.", skipped)
			}
			return nil
		},
	}
	return cmd
}

func newJournalExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Export trades to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized.")
				return fmt.Errorf("store not initialized")
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

			rows := make([]tradeRow, len(trades))
			for i, t := range trades {
				rows[i] = rowFromTrade(t)
			}

			file, err := os.Create(args[0])
			if err != nil {
				output.Error("Failed to create %s: %v", args[0], err)
				return err
			}
			defer file.Close()

			if err := gocsv.MarshalFile(&rows, file); err != nil {
				output.Error("Failed to write CSV: %v", err)
				return err
			}
			output.Success("✓ Exported %d trades to %s", len(trades), args[0])
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
