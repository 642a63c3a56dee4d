// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"strconv"
	"time"
)

// FormatDate formats a trade date.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDate parses a "YYYY-MM-DD" date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// TruncateString shortens a string to maxLen runes with an ellipsis.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}

func formatPct(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
