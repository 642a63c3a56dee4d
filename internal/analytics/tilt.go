package analytics

import (
	"fmt"
	"math"
	"time"

	"trade-journal/internal/models"
)

// TiltConfig holds the loss-streak alert thresholds.
type TiltConfig struct {
	// StreakThreshold is the consecutive-loss count that triggers the hard
	// streak alert.
	StreakThreshold int
	// DailyLossLimitR is the same-day cumulative R loss that triggers the
	// daily-limit alert.
	DailyLossLimitR float64
}

// DefaultTiltConfig returns the default thresholds.
func DefaultTiltConfig() TiltConfig {
	return TiltConfig{
		StreakThreshold: 3,
		DailyLossLimitR: 3,
	}
}

// LossStreakAlert is the tilt detector's assessment.
type LossStreakAlert struct {
	CurrentStreak int     // consecutive losses ending at the latest trade
	MaxStreak     int     // longest loss run anywhere in history
	DailyLossR    float64 // summed |r| of today's losing trades
	OnTilt        bool
	Alerts        []string
	Recommendation string
}

// DetectTilt scans the trade history for loss streaks and same-day R losses
// against the configured thresholds. now supplies "today" for the daily
// limit check. Alerts are additive; the soft two-loss caution fires only
// while the streak is below the hard threshold.
func DetectTilt(trades []models.Trade, cfg TiltConfig, now time.Time) LossStreakAlert {
	if cfg.StreakThreshold <= 0 {
		cfg.StreakThreshold = DefaultTiltConfig().StreakThreshold
	}
	if cfg.DailyLossLimitR <= 0 {
		cfg.DailyLossLimitR = DefaultTiltConfig().DailyLossLimitR
	}

	ordered := sortedByDate(trades)
	alert := LossStreakAlert{}

	for i := len(ordered) - 1; i >= 0; i-- {
		if !ordered[i].IsLoss() {
			break
		}
		alert.CurrentStreak++
	}

	streak := 0
	for _, t := range ordered {
		if t.IsLoss() {
			streak++
			if streak > alert.MaxStreak {
				alert.MaxStreak = streak
			}
		} else {
			streak = 0
		}
	}

	for _, t := range ordered {
		if t.SameDay(now) && t.IsLoss() {
			alert.DailyLossR += math.Abs(t.RFactor)
		}
	}

	alert.OnTilt = alert.CurrentStreak >= cfg.StreakThreshold ||
		alert.DailyLossR >= cfg.DailyLossLimitR

	if alert.CurrentStreak >= cfg.StreakThreshold {
		alert.Alerts = append(alert.Alerts,
			fmt.Sprintf("%d consecutive losses reached the streak limit of %d", alert.CurrentStreak, cfg.StreakThreshold))
	}
	if alert.DailyLossR >= cfg.DailyLossLimitR {
		alert.Alerts = append(alert.Alerts,
			fmt.Sprintf("today's losses total %.1fR, past the daily limit of %.1fR", alert.DailyLossR, cfg.DailyLossLimitR))
	}
	if alert.CurrentStreak >= 2 && alert.CurrentStreak < cfg.StreakThreshold {
		alert.Alerts = append(alert.Alerts,
			fmt.Sprintf("%d losses in a row: one more trips the streak limit", alert.CurrentStreak))
	}

	switch {
	case alert.OnTilt:
		alert.Recommendation = "Stop trading for the day. Review the losing trades before re-entering the market."
	case alert.CurrentStreak >= 2 || alert.DailyLossR >= 0.7*cfg.DailyLossLimitR:
		alert.Recommendation = "Reduce position size and take only A-grade setups until the streak breaks."
	default:
		alert.Recommendation = "Normal conditions. Trade the plan."
	}
	return alert
}
