package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	jerrors "trade-journal/internal/errors"
	"trade-journal/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleTrade(id string, day int) *models.Trade {
	entryPrice := 1.0850
	pnlBase := 109.0
	followed := false
	return &models.Trade{
		ID:              id,
		Date:            time.Date(2026, 3, 1+day, 0, 0, 0, 0, time.UTC),
		EntryTime:       "09:30",
		ExitTime:        "11:15",
		Symbol:          "EURUSD",
		SetupName:       "Breakout",
		Type:            models.TypeIntraday,
		Direction:       models.DirectionBuy,
		EntryPrice:      &entryPrice,
		StopLoss:        1.0840,
		Quantity:        10000,
		PnL:             100,
		Currency:        "EUR",
		PnLBase:         &pnlBase,
		ExchangeRate:    1.09,
		RFactor:         1.5,
		RuleFollowed:    &followed,
		RuleViolations:  []models.Violation{models.ViolationEarlyExit},
		Session:         models.SessionLondon,
		MarketCondition: models.ConditionTrending,
		EmotionEntry:    models.EmotionCalm,
		EmotionExit:     models.EmotionGreedy,
		MistakeTag:      "exited on noise",
	}
}

func TestSaveAndGetTradeRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := sampleTrade("t1", 0)
	if err := store.SaveTrade(ctx, want); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}

	got, err := store.GetTradeByID(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTradeByID: %v", err)
	}

	if got.Symbol != want.Symbol || got.SetupName != want.SetupName {
		t.Errorf("symbol/setup = %q/%q, want %q/%q", got.Symbol, got.SetupName, want.Symbol, want.SetupName)
	}
	if got.EntryTime != "09:30" || got.ExitTime != "11:15" {
		t.Errorf("times = %q/%q", got.EntryTime, got.ExitTime)
	}
	if got.EntryPrice == nil || *got.EntryPrice != 1.0850 {
		t.Errorf("EntryPrice = %v, want 1.0850", got.EntryPrice)
	}
	if got.ExitPrice != nil {
		t.Errorf("ExitPrice = %v, want nil", got.ExitPrice)
	}
	if got.PnLBase == nil || *got.PnLBase != 109.0 {
		t.Errorf("PnLBase = %v, want 109", got.PnLBase)
	}
	if got.RuleFollowed == nil || *got.RuleFollowed != false {
		t.Errorf("RuleFollowed = %v, want false", got.RuleFollowed)
	}
	if len(got.RuleViolations) != 1 || got.RuleViolations[0] != models.ViolationEarlyExit {
		t.Errorf("RuleViolations = %v", got.RuleViolations)
	}
	if got.Session != models.SessionLondon || got.MarketCondition != models.ConditionTrending {
		t.Errorf("tags = %v/%v", got.Session, got.MarketCondition)
	}
	if got.MistakeTag != "exited on noise" {
		t.Errorf("MistakeTag = %q", got.MistakeTag)
	}
}

func TestSaveTradeRejectsInvalid(t *testing.T) {
	store := newTestStore(t)

	bad := sampleTrade("t1", 0)
	bad.PnL = 100
	bad.RFactor = -1 // sign disagreement

	err := store.SaveTrade(context.Background(), bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *jerrors.ValidationError
	if !jerrors.As(err, &verr) {
		t.Errorf("error type = %T, want *ValidationError", err)
	}
}

func TestSaveTradeReplacesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade("t1", 0)
	if err := store.SaveTrade(ctx, trade); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}
	trade.PnL = 250
	trade.RFactor = 2.5
	if err := store.SaveTrade(ctx, trade); err != nil {
		t.Fatalf("SaveTrade (replace): %v", err)
	}

	count, err := store.CountTrades(ctx)
	if err != nil {
		t.Fatalf("CountTrades: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 after replace", count)
	}
	got, err := store.GetTradeByID(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTradeByID: %v", err)
	}
	if got.PnL != 250 {
		t.Errorf("PnL = %v, want the replaced 250", got.PnL)
	}
}

func TestGetTradesFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := sampleTrade("a", 0)
	b := sampleTrade("b", 5)
	b.Symbol = "GBPUSD"
	b.SetupName = "Pullback"
	c := sampleTrade("c", 10)
	for _, trade := range []*models.Trade{a, b, c} {
		if err := store.SaveTrade(ctx, trade); err != nil {
			t.Fatalf("SaveTrade(%s): %v", trade.ID, err)
		}
	}

	all, err := store.GetTrades(ctx, TradeFilter{})
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d trades, want 3", len(all))
	}
	// Oldest first.
	if all[0].ID != "a" || all[2].ID != "c" {
		t.Errorf("order = %s..%s, want a..c", all[0].ID, all[2].ID)
	}

	bySymbol, err := store.GetTrades(ctx, TradeFilter{Symbol: "GBPUSD"})
	if err != nil {
		t.Fatalf("GetTrades(symbol): %v", err)
	}
	if len(bySymbol) != 1 || bySymbol[0].ID != "b" {
		t.Errorf("symbol filter got %+v", bySymbol)
	}

	bySetup, err := store.GetTrades(ctx, TradeFilter{Setup: "Breakout"})
	if err != nil {
		t.Fatalf("GetTrades(setup): %v", err)
	}
	if len(bySetup) != 2 {
		t.Errorf("setup filter got %d trades, want 2", len(bySetup))
	}

	ranged, err := store.GetTrades(ctx, TradeFilter{
		StartDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("GetTrades(range): %v", err)
	}
	if len(ranged) != 1 || ranged[0].ID != "b" {
		t.Errorf("date range got %+v", ranged)
	}

	limited, err := store.GetTrades(ctx, TradeFilter{Limit: 2})
	if err != nil {
		t.Fatalf("GetTrades(limit): %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit got %d trades, want 2", len(limited))
	}
}

func TestGetTradeByIDNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetTradeByID(context.Background(), "missing")
	if !jerrors.Is(err, jerrors.ErrTradeNotFound) {
		t.Errorf("error = %v, want ErrTradeNotFound", err)
	}
}

func TestDeleteTrade(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveTrade(ctx, sampleTrade("t1", 0)); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}
	if err := store.DeleteTrade(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTrade: %v", err)
	}
	if err := store.DeleteTrade(ctx, "t1"); !jerrors.Is(err, jerrors.ErrTradeNotFound) {
		t.Errorf("second delete = %v, want ErrTradeNotFound", err)
	}
}
