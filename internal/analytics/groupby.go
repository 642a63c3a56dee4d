package analytics

import (
	"trade-journal/internal/models"
)

// GroupBy partitions trades into buckets keyed by an arbitrary derived key.
// Trades whose key is empty are skipped. Every by-X breakdown in the engine
// is built on this single primitive.
func GroupBy(trades []models.Trade, key func(models.Trade) string) map[string][]models.Trade {
	groups := make(map[string][]models.Trade)
	for _, t := range trades {
		k := key(t)
		if k == "" {
			continue
		}
		groups[k] = append(groups[k], t)
	}
	return groups
}

// Common key extractors for the standard breakdowns.

// BySetup keys a trade by its setup name.
func BySetup(t models.Trade) string { return t.SetupName }

// BySymbol keys a trade by its symbol.
func BySymbol(t models.Trade) string { return t.Symbol }

// ByType keys a trade by its trade type.
func ByType(t models.Trade) string { return string(t.Type) }

// BySession keys a trade by its stored session tag.
func BySession(t models.Trade) string { return string(t.Session) }

// ByMarketCondition keys a trade by its market-condition tag.
func ByMarketCondition(t models.Trade) string { return string(t.MarketCondition) }
