package analytics

import (
	"trade-journal/internal/currency"
	"trade-journal/internal/models"
)

// Interpretation classifies an expectancy result.
type Interpretation string

const (
	InterpretationProfitable Interpretation = "PROFITABLE"
	InterpretationBreakEven  Interpretation = "BREAK_EVEN"
	InterpretationLosing     Interpretation = "LOSING"
)

// ExpectancyResult holds win/loss statistics and expectancy for a set of
// trades. Loss averages are reported as positive magnitudes.
type ExpectancyResult struct {
	TotalTrades int
	Wins        int
	Losses      int
	BreakEvens  int

	WinRate  float64 // 0-100
	LossRate float64 // 0-100

	AvgWin  float64 // base currency
	AvgLoss float64 // base currency, positive magnitude
	AvgWinR  float64
	AvgLossR float64 // positive magnitude

	Expectancy  float64 // base currency per trade
	ExpectancyR float64 // R per trade

	Interpretation Interpretation
}

// Expectancy computes the expectancy statistics for any list of trades,
// full set or filtered subset. An empty list yields a fully zeroed result
// interpreted as break-even; no division by zero can occur.
func Expectancy(trades []models.Trade) ExpectancyResult {
	res := ExpectancyResult{
		TotalTrades:    len(trades),
		Interpretation: InterpretationBreakEven,
	}
	if len(trades) == 0 {
		return res
	}

	var winPnL, lossPnL, winR, lossR float64
	for _, t := range trades {
		switch t.Outcome() {
		case models.OutcomeWin:
			res.Wins++
			winPnL += currency.BasePnL(t)
			winR += t.RFactor
		case models.OutcomeLoss:
			res.Losses++
			lossPnL += currency.BasePnL(t)
			lossR += t.RFactor
		default:
			res.BreakEvens++
		}
	}

	// Break-even trades count toward the total but toward neither rate.
	res.WinRate = percent(res.Wins, res.TotalTrades)
	res.LossRate = percent(res.Losses, res.TotalTrades)

	if res.Wins > 0 {
		res.AvgWin = winPnL / float64(res.Wins)
		res.AvgWinR = winR / float64(res.Wins)
	}
	if res.Losses > 0 {
		res.AvgLoss = -lossPnL / float64(res.Losses)
		res.AvgLossR = -lossR / float64(res.Losses)
	}

	winFrac := res.WinRate / 100
	lossFrac := res.LossRate / 100
	res.Expectancy = winFrac*res.AvgWin - lossFrac*res.AvgLoss
	res.ExpectancyR = winFrac*res.AvgWinR - lossFrac*res.AvgLossR

	switch {
	case res.Expectancy > 0:
		res.Interpretation = InterpretationProfitable
	case res.Expectancy < 0:
		res.Interpretation = InterpretationLosing
	default:
		res.Interpretation = InterpretationBreakEven
	}
	return res
}

// ExpectancyBy computes one expectancy result per bucket of the given key.
// Trades with an empty key are excluded.
func ExpectancyBy(trades []models.Trade, key func(models.Trade) string) map[string]ExpectancyResult {
	groups := GroupBy(trades, key)
	out := make(map[string]ExpectancyResult, len(groups))
	for k, group := range groups {
		out[k] = Expectancy(group)
	}
	return out
}
