// Package store provides the local snapshot of fetched journal data.
package store

import (
	"context"
	"time"

	"trade-journal/internal/models"
)

// Store persists the last fetched trade list so it can be read offline.
type Store interface {
	// ReplaceTrades swaps the snapshot for records, keeping their order.
	ReplaceTrades(ctx context.Context, records []models.TradeRecord) error
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.TradeRecord, error)
	DeleteTrade(ctx context.Context, id int64) error

	// Sync
	GetLastSync(dataType string) time.Time
	SetLastSync(dataType string, t time.Time) error

	// Lifecycle
	Close() error
}

// TradeFilter represents filters for querying the snapshot.
type TradeFilter struct {
	Status     models.TradeStatus
	Instrument string
	Limit      int
}
