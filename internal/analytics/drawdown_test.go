package analytics

import (
	"strings"
	"testing"

	"trade-journal/internal/models"
)

func TestAnalyzeDrawdownsEmptyInput(t *testing.T) {
	got := AnalyzeDrawdowns(nil)
	if got.MaxDrawdown != 0 || got.CurrentDrawdown != 0 {
		t.Errorf("expected zeroed analysis, got %+v", got)
	}
	if len(got.Periods) != 0 || len(got.Equity) != 0 {
		t.Errorf("expected no periods or equity points, got %+v", got)
	}
}

func TestAnalyzeDrawdownsRecoveredPeriod(t *testing.T) {
	// Equity walks 100 -> 50 -> 20 -> 100: one closed period, 80 deep.
	trades := trs(
		[2]float64{100, 1},
		[2]float64{-50, -1},
		[2]float64{-30, -0.6},
		[2]float64{80, 1.6},
	)

	got := AnalyzeDrawdowns(trades)

	if got.MaxDrawdown != 80 {
		t.Errorf("MaxDrawdown = %v, want 80", got.MaxDrawdown)
	}
	if got.CurrentDrawdown != 0 {
		t.Errorf("CurrentDrawdown = %v, want 0 after full recovery", got.CurrentDrawdown)
	}
	if len(got.Periods) != 1 {
		t.Fatalf("got %d periods, want 1", len(got.Periods))
	}

	p := got.Periods[0]
	if !p.Start.Equal(baseDay.AddDate(0, 0, 1)) {
		t.Errorf("Start = %v, want the first losing trade's date", p.Start)
	}
	if !p.End.Equal(baseDay.AddDate(0, 0, 3)) {
		t.Errorf("End = %v, want the recovering trade's date", p.End)
	}
	if p.Magnitude != 80 {
		t.Errorf("Magnitude = %v, want 80", p.Magnitude)
	}
	if !almostEqual(p.RDrawdown, -1.6) {
		t.Errorf("RDrawdown = %v, want -1.6", p.RDrawdown)
	}
	if p.Trades != 2 {
		t.Errorf("Trades = %d, want the 2 buffered losers", p.Trades)
	}

	if len(got.Equity) != 4 {
		t.Fatalf("got %d equity points, want 4", len(got.Equity))
	}
	wantCum := []float64{100, 50, 20, 100}
	for i, pt := range got.Equity {
		if pt.Cumulative != wantCum[i] {
			t.Errorf("Equity[%d] = %v, want %v", i, pt.Cumulative, wantCum[i])
		}
	}
}

func TestAnalyzeDrawdownsOpenPeriod(t *testing.T) {
	trades := trs(
		[2]float64{100, 1},
		[2]float64{-40, -0.8},
	)

	got := AnalyzeDrawdowns(trades)
	if got.CurrentDrawdown != 40 {
		t.Errorf("CurrentDrawdown = %v, want 40", got.CurrentDrawdown)
	}
	if len(got.Periods) != 0 {
		t.Errorf("an unrecovered drawdown must not appear as a closed period, got %d", len(got.Periods))
	}
}

func TestAnalyzeDrawdownsPartialRecoveryStaysOpen(t *testing.T) {
	// 100 -> 40 -> 90: the curve bounced but never made a new peak.
	trades := trs(
		[2]float64{100, 1},
		[2]float64{-60, -1.2},
		[2]float64{50, 1},
	)

	got := AnalyzeDrawdowns(trades)
	if len(got.Periods) != 0 {
		t.Errorf("partial recovery must not close the period, got %d closed", len(got.Periods))
	}
	if got.CurrentDrawdown != 10 {
		t.Errorf("CurrentDrawdown = %v, want 10", got.CurrentDrawdown)
	}
	if got.MaxDrawdown != 60 {
		t.Errorf("MaxDrawdown = %v, want 60", got.MaxDrawdown)
	}
}

func TestAnalyzeDrawdownsKeepsLastFivePeriods(t *testing.T) {
	// Seven dip-and-recover cycles; only the five most recent survive.
	var trades []models.Trade
	day := 0
	next := func(pnl, r float64) {
		trades = append(trades, tr(day, pnl, r))
		day++
	}
	for i := 0; i < 7; i++ {
		next(50, 1)
		next(-20, -0.4)
		next(40, 0.8)
	}

	got := AnalyzeDrawdowns(trades)
	if len(got.Periods) != 5 {
		t.Fatalf("got %d periods, want 5", len(got.Periods))
	}
	// The oldest two cycles (starting days 1 and 4) must be gone.
	if got.Periods[0].Start.Before(baseDay.AddDate(0, 0, 7)) {
		t.Errorf("oldest kept period starts %v, expected the early cycles dropped", got.Periods[0].Start)
	}
}

func TestAnalyzeDrawdownsInsights(t *testing.T) {
	loser := withSession(withSetup(tr(1, -80, -1.6), "FOMO"), models.SessionNewYork)
	trades := []models.Trade{
		withSetup(tr(0, 100, 1), "Solid"),
		loser,
		withSetup(tr(2, 90, 1.8), "Solid"),
	}

	got := AnalyzeDrawdowns(trades)
	if len(got.Periods) != 1 {
		t.Fatalf("got %d periods, want 1", len(got.Periods))
	}
	if want := []string{"FOMO"}; len(got.Periods[0].Setups) != 1 || got.Periods[0].Setups[0] != want[0] {
		t.Errorf("period setups = %v, want %v", got.Periods[0].Setups, want)
	}

	joined := strings.Join(got.Insights, "\n")
	if !strings.Contains(joined, "FOMO") {
		t.Errorf("insights should name the worst setup, got %v", got.Insights)
	}
	if !strings.Contains(joined, "NEW_YORK") {
		t.Errorf("insights should name the worst session, got %v", got.Insights)
	}
}
