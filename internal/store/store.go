// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"trade-journal/internal/models"
)

// DataStore defines the interface for trade persistence. The analytics
// engine never touches it directly: callers load a snapshot of trades and
// hand the slice to the engine.
type DataStore interface {
	SaveTrade(ctx context.Context, trade *models.Trade) error
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	GetTradeByID(ctx context.Context, id string) (*models.Trade, error)
	DeleteTrade(ctx context.Context, id string) error
	CountTrades(ctx context.Context) (int, error)
	Close() error
}

// TradeFilter represents filters for querying trades.
type TradeFilter struct {
	Symbol    string
	Setup     string
	Session   models.Session
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}
