// Package models defines the trade record and its enumerated tags.
package models

import "time"

// Trade represents one closed, journaled trade. Analytics code treats a
// Trade as read-only; updates happen in the store before analysis runs.
type Trade struct {
	ID        string
	Date      time.Time // calendar date of the trade
	EntryTime string    // 24-hour "HH:MM", empty if not recorded
	ExitTime  string

	Symbol    string
	SetupName string
	Type      TradeType
	Direction Direction

	// Pricing is optional: process-journaling entries may carry no prices.
	EntryPrice *float64
	ExitPrice  *float64
	StopLoss   float64
	Quantity   int

	// PnL is net of fees, in the trade's own currency. PnLBase is the
	// conversion into the reporting base currency captured at close time;
	// once stored it is never recomputed with a later rate.
	PnL          float64
	Currency     string
	PnLBase      *float64
	ExchangeRate float64

	// RFactor is the signed risk multiple. Its sign must agree with the
	// sign of PnL; Validate enforces this at ingestion.
	RFactor float64

	RuleFollowed   *bool
	RuleViolations []Violation

	Session         Session
	MarketCondition MarketCondition
	EmotionEntry    Emotion
	EmotionExit     Emotion
	MistakeTag      string
}

// Outcome classifies the trade from the sign of PnL. This is the only
// win/loss derivation in the system; no stored flag is consulted.
func (t Trade) Outcome() Outcome {
	switch {
	case t.PnL > 0:
		return OutcomeWin
	case t.PnL < 0:
		return OutcomeLoss
	default:
		return OutcomeBreakEven
	}
}

// IsWin reports whether the trade closed with positive PnL.
func (t Trade) IsWin() bool { return t.PnL > 0 }

// IsLoss reports whether the trade closed with negative PnL.
func (t Trade) IsLoss() bool { return t.PnL < 0 }

// SameDay reports whether the trade's date falls on the same calendar day
// as the given time.
func (t Trade) SameDay(day time.Time) bool {
	y1, m1, d1 := t.Date.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
