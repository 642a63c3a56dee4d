package models

// Outcome represents the derived result of a trade.
type Outcome string

const (
	OutcomeWin       Outcome = "WIN"
	OutcomeLoss      Outcome = "LOSS"
	OutcomeBreakEven Outcome = "BREAK_EVEN"
)

// TradeType represents the holding style of a trade.
type TradeType string

const (
	TypeIntraday   TradeType = "INTRADAY"
	TypeSwing      TradeType = "SWING"
	TypeScalping   TradeType = "SCALPING"
	TypePositional TradeType = "POSITIONAL"
)

// Direction represents the position direction.
type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

// Session represents a fixed global-market time window.
type Session string

const (
	SessionAsia          Session = "ASIA"
	SessionAsiaLondon    Session = "ASIA_LONDON"
	SessionLondon        Session = "LONDON"
	SessionLondonNewYork Session = "LONDON_NEW_YORK"
	SessionNewYork       Session = "NEW_YORK"
	SessionOffHours      Session = "OFF_HOURS"
)

// AllSessions returns every session in display order.
func AllSessions() []Session {
	return []Session{
		SessionAsia,
		SessionAsiaLondon,
		SessionLondon,
		SessionLondonNewYork,
		SessionNewYork,
		SessionOffHours,
	}
}

// MarketCondition represents the trader's read of the market environment.
type MarketCondition string

const (
	ConditionTrending   MarketCondition = "TRENDING"
	ConditionRanging    MarketCondition = "RANGING"
	ConditionVolatile   MarketCondition = "VOLATILE"
	ConditionQuiet      MarketCondition = "QUIET"
	ConditionNewsDriven MarketCondition = "NEWS_DRIVEN"
	ConditionChoppy     MarketCondition = "CHOPPY"
)

// AllMarketConditions returns every market condition in display order.
func AllMarketConditions() []MarketCondition {
	return []MarketCondition{
		ConditionTrending,
		ConditionRanging,
		ConditionVolatile,
		ConditionQuiet,
		ConditionNewsDriven,
		ConditionChoppy,
	}
}

// Emotion represents an emotional state tag recorded at entry or exit.
type Emotion string

const (
	EmotionCalm       Emotion = "CALM"
	EmotionConfident  Emotion = "CONFIDENT"
	EmotionFearful    Emotion = "FEARFUL"
	EmotionGreedy     Emotion = "GREEDY"
	EmotionAnxious    Emotion = "ANXIOUS"
	EmotionFrustrated Emotion = "FRUSTRATED"
)

// Violation represents a specific broken trading rule.
type Violation string

const (
	ViolationNoStopLoss   Violation = "NO_STOP_LOSS"
	ViolationMovedStop    Violation = "MOVED_STOP"
	ViolationOversized    Violation = "OVERSIZED_POSITION"
	ViolationChasedEntry  Violation = "CHASED_ENTRY"
	ViolationEarlyExit    Violation = "EARLY_EXIT"
	ViolationRevengeTrade Violation = "REVENGE_TRADE"
	ViolationNoPlan       Violation = "NO_PLAN"
)
