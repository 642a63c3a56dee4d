package analytics

import (
	"trade-journal/internal/currency"
	"trade-journal/internal/models"
)

// ProfitSummary holds gross profit figures in the base currency. Loss
// figures are positive magnitudes.
type ProfitSummary struct {
	GrossProfit float64
	GrossLoss   float64
	// ProfitFactor is GrossProfit / GrossLoss, or 0 when there are no
	// losses to divide by.
	ProfitFactor float64
	LargestWin   float64
	LargestLoss  float64
}

// Profit aggregates gross profit, gross loss, and the extremes over any
// list of trades. An empty list yields a zeroed summary.
func Profit(trades []models.Trade) ProfitSummary {
	var summary ProfitSummary
	for _, t := range trades {
		pnl := currency.BasePnL(t)
		switch {
		case pnl > 0:
			summary.GrossProfit += pnl
			if pnl > summary.LargestWin {
				summary.LargestWin = pnl
			}
		case pnl < 0:
			summary.GrossLoss += -pnl
			if -pnl > summary.LargestLoss {
				summary.LargestLoss = -pnl
			}
		}
	}
	if summary.GrossLoss > 0 {
		summary.ProfitFactor = summary.GrossProfit / summary.GrossLoss
	}
	return summary
}
