package analytics

import (
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"trade-journal/internal/models"
)

// tradeGen generates trades with a pnl-consistent r-factor on consecutive
// days. Wins carry positive r, losses negative, break-evens zero.
func tradeGen() gopter.Gen {
	return gen.Float64Range(-500, 500).FlatMap(func(v interface{}) gopter.Gen {
		pnl := v.(float64)
		return gen.Float64Range(0.1, 4).Map(func(rMag float64) models.Trade {
			r := rMag
			switch {
			case pnl < 0:
				r = -rMag
			case pnl == 0:
				r = 0
			}
			return models.Trade{
				Symbol:   "EURUSD",
				PnL:      pnl,
				Currency: "USD",
				RFactor:  r,
			}
		})
	}, reflect.TypeOf(models.Trade{}))
}

func tradeSliceGen(maxLen int) gopter.Gen {
	return gen.SliceOfN(maxLen, tradeGen()).Map(func(trades []models.Trade) []models.Trade {
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := range trades {
			trades[i].ID = fmt.Sprintf("g-%04d", i)
			trades[i].Date = start.AddDate(0, 0, i)
		}
		return trades
	})
}

func TestPropertyRBucketsPartitionEveryTrade(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("every trade lands in exactly one bucket", prop.ForAll(
		func(trades []models.Trade) bool {
			stats := RMultiples(trades)
			total := 0
			for _, b := range stats.Buckets {
				total += b.Count
			}
			if len(trades) == 0 {
				return total == 0
			}
			if total != stats.Count {
				t.Logf("bucket counts sum to %d, want %d", total, stats.Count)
				return false
			}
			return true
		},
		tradeSliceGen(50),
	))

	properties.TestingRun(t)
}

func TestPropertyWinAndLossRatesSumWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("win, loss, and break-even counts cover the input", prop.ForAll(
		func(trades []models.Trade) bool {
			res := Expectancy(trades)
			if res.Wins+res.Losses+res.BreakEvens != res.TotalTrades {
				return false
			}
			if res.WinRate < 0 || res.LossRate < 0 {
				return false
			}
			return res.WinRate+res.LossRate <= 100+1e-9
		},
		tradeSliceGen(50),
	))

	properties.TestingRun(t)
}

func TestPropertyDrawdownOrdering(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("max drawdown bounds the current drawdown, both non-negative", prop.ForAll(
		func(trades []models.Trade) bool {
			analysis := AnalyzeDrawdowns(trades)
			if analysis.CurrentDrawdown < -1e-9 || analysis.MaxDrawdown < -1e-9 {
				return false
			}
			return analysis.MaxDrawdown >= analysis.CurrentDrawdown-1e-9
		},
		tradeSliceGen(50),
	))

	properties.Property("recorded periods never exceed the retention cap", prop.ForAll(
		func(trades []models.Trade) bool {
			return len(AnalyzeDrawdowns(trades).Periods) <= maxRecordedPeriods
		},
		tradeSliceGen(80),
	))

	properties.TestingRun(t)
}

func TestPropertySetupRanksAreContiguousAndOrdered(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	setupNames := []string{"Breakout", "Pullback", "Reversal", "ORB"}

	withSetups := tradeSliceGen(40).Map(func(trades []models.Trade) []models.Trade {
		for i := range trades {
			trades[i].SetupName = setupNames[i%len(setupNames)]
		}
		return trades
	})

	properties.Property("ranks run 1..N with non-increasing scores", prop.ForAll(
		func(trades []models.Trade) bool {
			scores := ScoreSetups(trades, DefaultScoreConfig())
			for i, s := range scores {
				if s.Rank != i+1 {
					return false
				}
				if i > 0 && scores[i-1].Score < s.Score {
					return false
				}
				if math.IsNaN(s.Score) || math.IsInf(s.Score, 0) {
					return false
				}
			}
			return true
		},
		withSetups,
	))

	properties.TestingRun(t)
}

func TestPropertyDetectSessionIsTotal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	valid := map[models.Session]bool{}
	for _, s := range models.AllSessions() {
		valid[s] = true
	}

	properties.Property("any input maps to one of the six sessions", prop.ForAll(
		func(s string) bool {
			return valid[DetectSession(s)]
		},
		gen.AnyString(),
	))

	properties.Property("well-formed clock times never map by failure", prop.ForAll(
		func(h, m int) bool {
			session := DetectSession(fmt.Sprintf("%02d:%02d", h, m))
			if h*60+m < newYorkEnd && h >= 0 {
				return session != models.SessionOffHours
			}
			return session == models.SessionOffHours
		},
		gen.IntRange(0, 23),
		gen.IntRange(0, 59),
	))

	properties.TestingRun(t)
}

func TestPropertySummarizeNeverPanicsAndStaysConsistent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	properties.Property("summary totals match the input size", prop.ForAll(
		func(trades []models.Trade) bool {
			summary := Summarize(trades, DefaultConfig(), now)
			return summary.TotalTrades == len(trades) &&
				summary.Expectancy.TotalTrades == len(trades) &&
				summary.RStats.Count == len(trades)
		},
		tradeSliceGen(60),
	))

	properties.TestingRun(t)
}
