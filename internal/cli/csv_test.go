package cli

import (
	"testing"
	"time"

	"trade-journal/internal/models"
)

func TestTradeRowRoundTrip(t *testing.T) {
	entry := 1.085
	pnlBase := 109.0
	followed := false
	want := models.Trade{
		ID:              "t1",
		Date:            time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		EntryTime:       "09:30",
		Symbol:          "EURUSD",
		SetupName:       "Breakout",
		Type:            models.TypeIntraday,
		Direction:       models.DirectionBuy,
		EntryPrice:      &entry,
		StopLoss:        1.084,
		Quantity:        10000,
		PnL:             100,
		Currency:        "EUR",
		PnLBase:         &pnlBase,
		ExchangeRate:    1.09,
		RFactor:         1.5,
		RuleFollowed:    &followed,
		RuleViolations:  []models.Violation{models.ViolationMovedStop, models.ViolationEarlyExit},
		Session:         models.SessionLondon,
		MarketCondition: models.ConditionTrending,
	}

	got, err := rowFromTrade(want).toTrade()
	if err != nil {
		t.Fatalf("toTrade: %v", err)
	}

	if got.ID != want.ID || !got.Date.Equal(want.Date) {
		t.Errorf("id/date = %q/%v", got.ID, got.Date)
	}
	if got.EntryPrice == nil || *got.EntryPrice != entry {
		t.Errorf("EntryPrice = %v, want %v", got.EntryPrice, entry)
	}
	if got.ExitPrice != nil {
		t.Errorf("ExitPrice = %v, want nil", got.ExitPrice)
	}
	if got.PnLBase == nil || *got.PnLBase != pnlBase {
		t.Errorf("PnLBase = %v, want %v", got.PnLBase, pnlBase)
	}
	if got.RuleFollowed == nil || *got.RuleFollowed != false {
		t.Errorf("RuleFollowed = %v, want false", got.RuleFollowed)
	}
	if len(got.RuleViolations) != 2 || got.RuleViolations[0] != models.ViolationMovedStop {
		t.Errorf("RuleViolations = %v", got.RuleViolations)
	}
	if got.Session != models.SessionLondon {
		t.Errorf("Session = %v", got.Session)
	}
}

func TestTradeRowOptionalFieldsStayEmpty(t *testing.T) {
	trade := models.Trade{
		ID:        "t2",
		Date:      time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Symbol:    "NIFTY",
		Direction: models.DirectionSell,
		StopLoss:  22100,
		Quantity:  50,
		PnL:       -45,
		Currency:  "INR",
		RFactor:   -1,
	}

	row := rowFromTrade(trade)
	if row.EntryPrice != "" || row.ExitPrice != "" || row.PnLBase != "" {
		t.Errorf("optional price columns should be empty: %+v", row)
	}
	if row.RuleFollowed != "" || row.Violations != "" {
		t.Errorf("optional rule columns should be empty: %+v", row)
	}

	got, err := row.toTrade()
	if err != nil {
		t.Fatalf("toTrade: %v", err)
	}
	if got.EntryPrice != nil || got.PnLBase != nil || got.RuleFollowed != nil {
		t.Errorf("optional fields should round-trip as nil: %+v", got)
	}
}

func TestTradeRowGeneratesMissingID(t *testing.T) {
	row := tradeRow{Date: "2026-03-15", Symbol: "EURUSD", Quantity: 1}
	got, err := row.toTrade()
	if err != nil {
		t.Fatalf("toTrade: %v", err)
	}
	if got.ID == "" {
		t.Error("expected a generated id for a blank id column")
	}
}

func TestTradeRowRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*tradeRow)
	}{
		{"bad date", func(r *tradeRow) { r.Date = "15-03-2026" }},
		{"bad entry price", func(r *tradeRow) { r.EntryPrice = "abc" }},
		{"bad rule flag", func(r *tradeRow) { r.RuleFollowed = "maybe" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := tradeRow{Date: "2026-03-15", Symbol: "EURUSD"}
			tt.mutate(&row)
			if _, err := row.toTrade(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
