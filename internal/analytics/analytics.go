// Package analytics derives statistics from a collection of journaled
// trades. Every function is a pure transform of its input: nothing here
// performs I/O, holds state between calls, or mutates the caller's slice.
// Components that depend on chronological order sort their own working copy.
package analytics

import (
	"sort"

	"trade-journal/internal/models"
)

// Config bundles the tunable parameters of the engine.
type Config struct {
	Score ScoreConfig
	Tilt  TiltConfig
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Score: DefaultScoreConfig(),
		Tilt:  DefaultTiltConfig(),
	}
}

// sortedByDate returns a copy of trades ordered by date. Ties are broken by
// ID so repeated runs over the same input produce identical output.
func sortedByDate(trades []models.Trade) []models.Trade {
	out := make([]models.Trade, len(trades))
	copy(out, trades)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// mean returns the arithmetic mean of values, or 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// percent returns part/total as a percentage, or 0 when total is 0.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
