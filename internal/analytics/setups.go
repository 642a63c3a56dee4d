package analytics

import (
	"sort"

	"trade-journal/internal/currency"
	"trade-journal/internal/models"
)

// Recommendation classifies a setup after scoring.
type Recommendation string

const (
	RecommendationKeep   Recommendation = "KEEP"
	RecommendationReview Recommendation = "REVIEW"
	RecommendationAvoid  Recommendation = "AVOID"
)

// ScoreConfig holds the setup-quality scoring parameters.
type ScoreConfig struct {
	// DrawdownUnit is the base-currency amount at which drawdown starts to
	// penalize the score linearly. Below one unit the penalty is flat.
	// Tune this to the account's currency scale.
	DrawdownUnit float64
}

// DefaultScoreConfig returns the default scoring parameters.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{DrawdownUnit: 1000}
}

// SetupQualityScore is the composite quality assessment of one setup.
type SetupQualityScore struct {
	Setup          string
	Trades         int
	Expectancy     ExpectancyResult
	RStats         RMultipleStats
	MaxDrawdown    float64 // base currency, setup-local
	Score          float64
	Recommendation Recommendation
	Rank           int // 1 = best, assigned after all setups are scored
}

// ScoreSetups groups trades by setup name, scores each setup, and returns
// them ranked best-first. Trades without a setup name are excluded.
func ScoreSetups(trades []models.Trade, cfg ScoreConfig) []SetupQualityScore {
	if cfg.DrawdownUnit <= 0 {
		cfg.DrawdownUnit = DefaultScoreConfig().DrawdownUnit
	}

	groups := GroupBy(trades, BySetup)
	scores := make([]SetupQualityScore, 0, len(groups))
	for setup, group := range groups {
		exp := Expectancy(group)
		rstats := RMultiples(group)
		maxDD := setupDrawdown(group)

		ddFactor := maxDD / cfg.DrawdownUnit
		if ddFactor < 1 {
			ddFactor = 1
		}
		score := (exp.WinRate / 100 * rstats.Mean) / ddFactor

		scores = append(scores, SetupQualityScore{
			Setup:          setup,
			Trades:         len(group),
			Expectancy:     exp,
			RStats:         rstats,
			MaxDrawdown:    maxDD,
			Score:          score,
			Recommendation: recommend(score, exp.ExpectancyR),
		})
	}

	// Rank in a second pass over the fully scored list.
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Setup < scores[j].Setup
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}
	return scores
}

func recommend(score, expectancyR float64) Recommendation {
	switch {
	case score < 0 || expectancyR < -0.2:
		return RecommendationAvoid
	case score > 0.5 && expectancyR > 0:
		return RecommendationKeep
	default:
		return RecommendationReview
	}
}

// setupDrawdown walks one setup's trades chronologically and returns the
// largest running peak-to-current gap of cumulative base P&L.
func setupDrawdown(trades []models.Trade) float64 {
	var cum, peak, maxDD float64
	for _, t := range sortedByDate(trades) {
		cum += currency.BasePnL(t)
		if cum > peak {
			peak = cum
		}
		if dd := peak - cum; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}
