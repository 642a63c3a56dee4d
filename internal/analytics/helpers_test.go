package analytics

import (
	"fmt"
	"time"

	"trade-journal/internal/models"
)

// baseDay anchors test trade dates.
var baseDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// tr builds a USD trade on baseDay+dayOffset with the given pnl and r.
func tr(dayOffset int, pnl, r float64) models.Trade {
	return models.Trade{
		ID:       fmt.Sprintf("t-%03d", dayOffset),
		Date:     baseDay.AddDate(0, 0, dayOffset),
		Symbol:   "EURUSD",
		PnL:      pnl,
		Currency: "USD",
		RFactor:  r,
	}
}

// trs maps each (pnl, r) pair to a trade on consecutive days.
func trs(pairs ...[2]float64) []models.Trade {
	out := make([]models.Trade, len(pairs))
	for i, p := range pairs {
		out[i] = tr(i, p[0], p[1])
	}
	return out
}

func withSetup(t models.Trade, setup string) models.Trade {
	t.SetupName = setup
	return t
}

func withSession(t models.Trade, session models.Session) models.Trade {
	t.Session = session
	return t
}

func withRules(t models.Trade, followed bool, violations ...models.Violation) models.Trade {
	t.RuleFollowed = &followed
	t.RuleViolations = violations
	return t
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	diff := a - b
	return diff < eps && diff > -eps
}
