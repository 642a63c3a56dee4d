package analytics

import (
	"fmt"
	"time"

	"trade-journal/internal/models"
)

// AnalyticsSummary composes every component's output into one report.
type AnalyticsSummary struct {
	TotalTrades      int
	Expectancy       ExpectancyResult
	RStats           RMultipleStats
	Setups           []SetupQualityScore
	Rules            RuleBreakAnalysis
	Sessions         SessionAnalysis
	Hours            []TimePerformance
	MarketConditions []MarketConditionPerformance
	Tilt             LossStreakAlert
	Drawdown         DrawdownAnalysis

	// Insights are presentation strings derived from fixed thresholds.
	// Callers needing structured data read the component fields directly.
	Insights []string
}

// Summarize runs every analyzer once over the same trade list and derives
// the natural-language insights. now supplies "today" for tilt detection.
func Summarize(trades []models.Trade, cfg Config, now time.Time) AnalyticsSummary {
	summary := AnalyticsSummary{
		TotalTrades:      len(trades),
		Expectancy:       Expectancy(trades),
		RStats:           RMultiples(trades),
		Setups:           ScoreSetups(trades, cfg.Score),
		Rules:            AnalyzeRuleBreaks(trades),
		Sessions:         AnalyzeSessions(trades),
		Hours:            AnalyzeHours(trades),
		MarketConditions: AnalyzeMarketConditions(trades),
		Tilt:             DetectTilt(trades, cfg.Tilt, now),
		Drawdown:         AnalyzeDrawdowns(trades),
	}
	summary.Insights = deriveInsights(summary)
	return summary
}

func deriveInsights(s AnalyticsSummary) []string {
	var insights []string
	if s.TotalTrades == 0 {
		return insights
	}

	if s.Expectancy.ExpectancyR > 0.3 {
		insights = append(insights,
			fmt.Sprintf("Strong positive expectancy: %.2fR per trade on average.", s.Expectancy.ExpectancyR))
	}

	if len(s.Setups) > 0 && s.Setups[0].Score > 0 {
		insights = append(insights,
			fmt.Sprintf("Best performing setup: %q (score %.2f, %d trades).",
				s.Setups[0].Setup, s.Setups[0].Score, s.Setups[0].Trades))
	}
	for _, setup := range s.Setups {
		if setup.Recommendation == RecommendationAvoid {
			insights = append(insights,
				fmt.Sprintf("Setup %q grades as avoid: consider dropping it.", setup.Setup))
			break
		}
	}

	if s.Rules.Followed.Trades > 0 && s.Rules.Broken.Trades > 0 {
		gap := s.Rules.Followed.TotalPnL - s.Rules.Broken.TotalPnL
		if gap > 0 {
			insights = append(insights,
				fmt.Sprintf("Trades taken by the rules made %.2f more than rule-breaking trades.", gap))
		}
	}

	if s.Tilt.OnTilt {
		insights = append(insights, s.Tilt.Alerts...)
	}

	if s.Expectancy.WinRate > 50 && s.RStats.PctAtLeast2R < 20 {
		insights = append(insights,
			"Win rate is above 50% but fewer than 20% of trades reach 2R: consider letting winners run.")
	}
	return insights
}
