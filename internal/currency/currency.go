// Package currency normalizes trade P&L into the single reporting base
// currency. Rates are a configuration constant, never a live feed: a
// journaled trade's historical P&L must not drift when today's rates move.
package currency

import (
	"trade-journal/internal/models"
)

// defaultRates maps a currency code to its conversion rate into the base
// currency. Codes not listed convert at 1 (treated as already in base).
var defaultRates = map[string]float64{
	"USD": 1.0,
	"EUR": 1.09,
	"GBP": 1.27,
	"JPY": 0.0067,
	"CHF": 1.13,
	"AUD": 0.66,
	"CAD": 0.73,
	"SGD": 0.74,
	"INR": 0.012,
}

var rates = clone(defaultRates)

// Configure replaces or extends the rate table with values from
// configuration. Called once at startup before any analysis runs.
func Configure(overrides map[string]float64) {
	for code, rate := range overrides {
		if rate > 0 {
			rates[code] = rate
		}
	}
}

// Reset restores the built-in default table. Used by tests.
func Reset() {
	rates = clone(defaultRates)
}

// RateFor returns the conversion rate for a currency code, or 1 when the
// code is unknown.
func RateFor(code string) float64 {
	if rate, ok := rates[code]; ok {
		return rate
	}
	return 1
}

// BasePnL returns the trade's P&L in the base currency. A stored PnLBase is
// authoritative: it was captured at close time and is returned verbatim
// regardless of the current rate table. Only trades without one fall back
// to the default table.
func BasePnL(t models.Trade) float64 {
	if t.PnLBase != nil {
		return *t.PnLBase
	}
	return t.PnL * RateFor(t.Currency)
}

func clone(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
