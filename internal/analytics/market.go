package analytics

import (
	"trade-journal/internal/currency"
	"trade-journal/internal/models"
)

// MarketConditionPerformance summarizes performance under one market
// condition tag.
type MarketConditionPerformance struct {
	Condition   models.MarketCondition
	Trades      int
	WinRate     float64
	AvgR        float64
	TotalPnL    float64 // base currency
	ExpectancyR float64
}

// AnalyzeMarketConditions computes performance per market-condition tag.
// Same shape as the session breakdown; no best/worst marking here. Every
// condition appears in the output, zeroed when no trade carries it.
func AnalyzeMarketConditions(trades []models.Trade) []MarketConditionPerformance {
	byTag := GroupBy(trades, ByMarketCondition)

	out := make([]MarketConditionPerformance, 0, 6)
	for _, condition := range models.AllMarketConditions() {
		group := byTag[string(condition)]
		perf := MarketConditionPerformance{Condition: condition, Trades: len(group)}
		if len(group) > 0 {
			exp := Expectancy(group)
			perf.WinRate = exp.WinRate
			perf.ExpectancyR = exp.ExpectancyR
			var totalR float64
			for _, t := range group {
				totalR += t.RFactor
				perf.TotalPnL += currency.BasePnL(t)
			}
			perf.AvgR = totalR / float64(len(group))
		}
		out = append(out, perf)
	}
	return out
}
