package analytics

import (
	"sort"

	"trade-journal/internal/currency"
	"trade-journal/internal/models"
)

// RuleGroupStats summarizes one partition of the rules-followed split.
type RuleGroupStats struct {
	Trades   int
	TotalPnL float64 // base currency
	AvgR     float64
	WinRate  float64
}

// ViolationImpact aggregates the financial impact of one violation tag.
type ViolationImpact struct {
	Violation models.Violation
	Count     int
	TotalPnL  float64 // base currency
	TotalR    float64
	AvgR      float64
}

// RuleBreakAnalysis compares trades taken by the rules against rule-breaking
// trades, with a per-violation breakdown.
type RuleBreakAnalysis struct {
	Followed RuleGroupStats
	Broken   RuleGroupStats
	// Violations is sorted ascending by total P&L: worst impact first.
	Violations []ViolationImpact
}

// AnalyzeRuleBreaks partitions trades by the rule-followed flag and
// aggregates per-violation impact. Trades without the flag recorded belong
// to neither partition.
func AnalyzeRuleBreaks(trades []models.Trade) RuleBreakAnalysis {
	var followed, broken []models.Trade
	for _, t := range trades {
		if t.RuleFollowed == nil {
			continue
		}
		if *t.RuleFollowed {
			followed = append(followed, t)
		} else {
			broken = append(broken, t)
		}
	}

	analysis := RuleBreakAnalysis{
		Followed: ruleGroupStats(followed),
		Broken:   ruleGroupStats(broken),
	}

	// A trade may carry several violation tags; it counts once per tag.
	impact := make(map[models.Violation]*ViolationImpact)
	for _, t := range trades {
		for _, v := range t.RuleViolations {
			entry, ok := impact[v]
			if !ok {
				entry = &ViolationImpact{Violation: v}
				impact[v] = entry
			}
			entry.Count++
			entry.TotalPnL += currency.BasePnL(t)
			entry.TotalR += t.RFactor
		}
	}
	for _, entry := range impact {
		entry.AvgR = entry.TotalR / float64(entry.Count)
		analysis.Violations = append(analysis.Violations, *entry)
	}
	sort.Slice(analysis.Violations, func(i, j int) bool {
		if analysis.Violations[i].TotalPnL != analysis.Violations[j].TotalPnL {
			return analysis.Violations[i].TotalPnL < analysis.Violations[j].TotalPnL
		}
		return analysis.Violations[i].Violation < analysis.Violations[j].Violation
	})
	return analysis
}

func ruleGroupStats(trades []models.Trade) RuleGroupStats {
	stats := RuleGroupStats{Trades: len(trades)}
	if len(trades) == 0 {
		return stats
	}
	var wins int
	var totalR float64
	for _, t := range trades {
		stats.TotalPnL += currency.BasePnL(t)
		totalR += t.RFactor
		if t.IsWin() {
			wins++
		}
	}
	stats.AvgR = totalR / float64(len(trades))
	stats.WinRate = percent(wins, len(trades))
	return stats
}
