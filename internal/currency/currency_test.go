package currency

import (
	"testing"

	"trade-journal/internal/models"
)

func TestBasePnLPrefersStoredConversion(t *testing.T) {
	defer Reset()

	stored := 90.0
	trade := models.Trade{PnL: 100, Currency: "EUR", PnLBase: &stored}

	if got := BasePnL(trade); got != 90 {
		t.Errorf("BasePnL = %v, want the stored 90", got)
	}

	// Moving the live rate must not touch a stored conversion.
	Configure(map[string]float64{"EUR": 2.0})
	if got := BasePnL(trade); got != 90 {
		t.Errorf("BasePnL after rate change = %v, want the stored 90", got)
	}
}

func TestBasePnLFallbackRate(t *testing.T) {
	defer Reset()

	tests := []struct {
		name     string
		currency string
		pnl      float64
		want     float64
	}{
		{"base currency at rate 1", "USD", 100, 100},
		{"known currency converts", "EUR", 100, 109},
		{"unknown currency passes through", "XYZ", 100, 100},
		{"empty currency passes through", "", -50, -50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trade := models.Trade{PnL: tt.pnl, Currency: tt.currency}
			if got := BasePnL(trade); got != tt.want {
				t.Errorf("BasePnL = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigureIgnoresNonPositiveRates(t *testing.T) {
	defer Reset()

	Configure(map[string]float64{
		"EUR": 1.20,
		"GBP": 0,
		"JPY": -5,
	})

	if got := RateFor("EUR"); got != 1.20 {
		t.Errorf("RateFor(EUR) = %v, want the override 1.20", got)
	}
	if got := RateFor("GBP"); got != 1.27 {
		t.Errorf("RateFor(GBP) = %v, want the default 1.27", got)
	}
	if got := RateFor("JPY"); got != 0.0067 {
		t.Errorf("RateFor(JPY) = %v, want the default 0.0067", got)
	}
}

func TestReset(t *testing.T) {
	Configure(map[string]float64{"EUR": 9.9})
	Reset()
	if got := RateFor("EUR"); got != 1.09 {
		t.Errorf("RateFor(EUR) after Reset = %v, want 1.09", got)
	}
}
