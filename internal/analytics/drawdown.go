package analytics

import (
	"fmt"
	"sort"
	"time"

	"trade-journal/internal/currency"
	"trade-journal/internal/models"
)

// EquityPoint is one step of the cumulative base-currency equity curve.
type EquityPoint struct {
	Date       time.Time
	Cumulative float64
}

// DrawdownPeriod is one closed peak-to-recovery stretch of the equity curve.
type DrawdownPeriod struct {
	Start     time.Time
	End       time.Time // date of the recovering trade
	Magnitude float64   // peak at period start minus the lowest point reached
	RDrawdown float64   // sum of negative r-factors inside the period
	Trades    int
	Setups    []string
	Sessions  []string

	// trades keeps the buffered period trades for insight attribution.
	trades []models.Trade
}

// DrawdownAnalysis is the full drawdown reconstruction of a trade history.
type DrawdownAnalysis struct {
	MaxDrawdown     float64 // largest peak-to-current gap seen at any step
	MaxDrawdownR    float64
	CurrentDrawdown float64 // still-open drawdown at the end of history
	// Periods holds at most the five most recent closed periods.
	Periods  []DrawdownPeriod
	Insights []string
	Equity   []EquityPoint
}

// maxRecordedPeriods bounds how many closed periods the analysis keeps.
const maxRecordedPeriods = 5

// drawdownWalker is the two-state machine behind AnalyzeDrawdowns: it is
// either at a fresh equity peak or inside an open drawdown period buffering
// trades until the curve recovers.
type drawdownWalker struct {
	cum    float64
	peak   float64
	cumR   float64
	peakR  float64
	maxDD  float64
	maxDDR float64

	inDrawdown  bool
	periodStart time.Time
	periodPeak  float64
	periodLow   float64
	buffer      []models.Trade

	periods []DrawdownPeriod
}

// AnalyzeDrawdowns sorts trades chronologically and reconstructs the
// peak-to-trough periods of the cumulative base-currency equity curve.
func AnalyzeDrawdowns(trades []models.Trade) DrawdownAnalysis {
	ordered := sortedByDate(trades)
	w := &drawdownWalker{}
	equity := make([]EquityPoint, 0, len(ordered))

	for _, t := range ordered {
		w.step(t)
		equity = append(equity, EquityPoint{Date: t.Date, Cumulative: w.cum})
	}

	analysis := DrawdownAnalysis{
		MaxDrawdown:     w.maxDD,
		MaxDrawdownR:    w.maxDDR,
		CurrentDrawdown: w.peak - w.cum,
		Periods:         w.periods,
		Equity:          equity,
	}
	if len(analysis.Periods) > maxRecordedPeriods {
		analysis.Periods = analysis.Periods[len(analysis.Periods)-maxRecordedPeriods:]
	}
	analysis.Insights = drawdownInsights(w.periods)
	return analysis
}

func (w *drawdownWalker) step(t models.Trade) {
	w.cum += currency.BasePnL(t)
	w.cumR += t.RFactor

	if w.cum > w.peak {
		// New equity peak: close any open period, ended by this trade.
		if w.inDrawdown {
			w.closePeriod(t.Date)
		}
		w.peak = w.cum
	} else {
		if !w.inDrawdown {
			w.inDrawdown = true
			w.periodStart = t.Date
			w.periodPeak = w.peak
			w.periodLow = w.cum
		}
		w.buffer = append(w.buffer, t)
		if w.cum < w.periodLow {
			w.periodLow = w.cum
		}
	}

	if w.cumR > w.peakR {
		w.peakR = w.cumR
	}
	if dd := w.peak - w.cum; dd > w.maxDD {
		w.maxDD = dd
	}
	if ddR := w.peakR - w.cumR; ddR > w.maxDDR {
		w.maxDDR = ddR
	}
}

func (w *drawdownWalker) closePeriod(end time.Time) {
	period := DrawdownPeriod{
		Start:     w.periodStart,
		End:       end,
		Magnitude: w.periodPeak - w.periodLow,
		Trades:    len(w.buffer),
		trades:    w.buffer,
	}
	setups := make(map[string]struct{})
	sessions := make(map[string]struct{})
	for _, t := range w.buffer {
		if t.RFactor < 0 {
			period.RDrawdown += t.RFactor
		}
		if t.SetupName != "" {
			setups[t.SetupName] = struct{}{}
		}
		if t.Session != "" {
			sessions[string(t.Session)] = struct{}{}
		}
	}
	period.Setups = sortedKeys(setups)
	period.Sessions = sortedKeys(sessions)

	w.periods = append(w.periods, period)
	w.inDrawdown = false
	w.buffer = nil
}

// drawdownInsights names the single setup and session whose trades lost the
// most across all recorded periods.
func drawdownInsights(periods []DrawdownPeriod) []string {
	if len(periods) == 0 {
		return nil
	}
	var insights []string
	if setup, loss := worstContributor(periods, func(t models.Trade) string { return t.SetupName }); setup != "" {
		insights = append(insights,
			fmt.Sprintf("Setup %q accounts for the largest share of drawdown losses (%.2f)", setup, loss))
	}
	if session, loss := worstContributor(periods, func(t models.Trade) string { return string(t.Session) }); session != "" {
		insights = append(insights,
			fmt.Sprintf("Session %s accounts for the largest share of drawdown losses (%.2f)", session, loss))
	}
	return insights
}

// worstContributor sums each key's losing-trade magnitudes over the trades
// captured in the recorded periods and returns the largest.
func worstContributor(periods []DrawdownPeriod, key func(models.Trade) string) (string, float64) {
	losses := make(map[string]float64)
	for _, p := range periods {
		for _, t := range p.trades {
			k := key(t)
			if k == "" {
				continue
			}
			if pnl := currency.BasePnL(t); pnl < 0 {
				losses[k] += -pnl
			}
		}
	}
	var worst string
	var worstLoss float64
	for k, loss := range losses {
		if loss > worstLoss || (loss == worstLoss && worst != "" && k < worst) {
			worst = k
			worstLoss = loss
		}
	}
	return worst, worstLoss
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
