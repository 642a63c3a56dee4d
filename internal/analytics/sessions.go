package analytics

import (
	"fmt"

	"trade-journal/internal/currency"
	"trade-journal/internal/models"
)

// SessionPerformance summarizes performance inside one market session.
type SessionPerformance struct {
	Session     models.Session
	Trades      int
	WinRate     float64
	AvgR        float64
	TotalPnL    float64 // base currency
	ExpectancyR float64
}

// SessionAnalysis is the per-session breakdown with the best and worst
// session marked by R expectancy. Sessions with no trades are never chosen.
type SessionAnalysis struct {
	Sessions []SessionPerformance
	Best     models.Session
	Worst    models.Session
}

// AnalyzeSessions computes performance for each of the six fixed sessions,
// grouped by the trade's stored session tag. Empty sessions still appear
// with zeroed stats.
func AnalyzeSessions(trades []models.Trade) SessionAnalysis {
	byTag := GroupBy(trades, BySession)

	analysis := SessionAnalysis{Sessions: make([]SessionPerformance, 0, 6)}
	for _, session := range models.AllSessions() {
		group := byTag[string(session)]
		analysis.Sessions = append(analysis.Sessions, sessionPerformance(session, group))
	}

	// Best/worst only among sessions that actually saw trades: a zero-trade
	// session's default zero expectancy must not win the comparison.
	first := true
	var best, worst SessionPerformance
	for _, perf := range analysis.Sessions {
		if perf.Trades == 0 {
			continue
		}
		if first {
			best, worst = perf, perf
			first = false
			continue
		}
		if perf.ExpectancyR > best.ExpectancyR {
			best = perf
		}
		if perf.ExpectancyR < worst.ExpectancyR {
			worst = perf
		}
	}
	if !first {
		analysis.Best = best.Session
		analysis.Worst = worst.Session
	}
	return analysis
}

func sessionPerformance(session models.Session, trades []models.Trade) SessionPerformance {
	perf := SessionPerformance{Session: session, Trades: len(trades)}
	if len(trades) == 0 {
		return perf
	}
	exp := Expectancy(trades)
	perf.WinRate = exp.WinRate
	perf.ExpectancyR = exp.ExpectancyR

	var totalR float64
	for _, t := range trades {
		totalR += t.RFactor
		perf.TotalPnL += currency.BasePnL(t)
	}
	perf.AvgR = totalR / float64(len(trades))
	return perf
}

// TimePerformance summarizes performance for one hour of the day.
type TimePerformance struct {
	Hour     int
	Label    string // "HH:00"
	Trades   int
	WinRate  float64
	AvgR     float64
	TotalPnL float64 // base currency
}

// AnalyzeHours aggregates trades by the hour of their entry time. Trades
// without an entry time (or with one that does not parse) are skipped.
// Every hour 0-23 appears in the output, zeroed when empty.
func AnalyzeHours(trades []models.Trade) []TimePerformance {
	byHour := make(map[int][]models.Trade)
	for _, t := range trades {
		if t.EntryTime == "" {
			continue
		}
		hour, _, err := models.ParseClock(t.EntryTime)
		if err != nil {
			continue
		}
		byHour[hour] = append(byHour[hour], t)
	}

	out := make([]TimePerformance, 24)
	for hour := 0; hour < 24; hour++ {
		perf := TimePerformance{Hour: hour, Label: fmt.Sprintf("%02d:00", hour)}
		group := byHour[hour]
		perf.Trades = len(group)
		if len(group) > 0 {
			exp := Expectancy(group)
			perf.WinRate = exp.WinRate
			var totalR float64
			for _, t := range group {
				totalR += t.RFactor
				perf.TotalPnL += currency.BasePnL(t)
			}
			perf.AvgR = totalR / float64(len(group))
		}
		out[hour] = perf
	}
	return out
}

// Session boundaries in UTC minutes of day.
const (
	asiaEnd       = 420  // 07:00
	asiaLondonEnd = 540  // 09:00
	londonEnd     = 720  // 12:00
	londonNYEnd   = 960  // 16:00
	newYorkEnd    = 1260 // 21:00
)

// DetectSession maps an entry time string to the market session whose UTC
// window contains it. This is a pure lookup: a trade's stored session tag
// may disagree with it, and the session analyzer always trusts the tag.
// Unparseable input maps to off-hours.
func DetectSession(entryTime string) models.Session {
	minute, err := models.MinuteOfDay(entryTime)
	if err != nil {
		return models.SessionOffHours
	}
	switch {
	case minute < asiaEnd:
		return models.SessionAsia
	case minute < asiaLondonEnd:
		return models.SessionAsiaLondon
	case minute < londonEnd:
		return models.SessionLondon
	case minute < londonNYEnd:
		return models.SessionLondonNewYork
	case minute < newYorkEnd:
		return models.SessionNewYork
	default:
		return models.SessionOffHours
	}
}
