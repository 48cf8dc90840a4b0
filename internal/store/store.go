// Package store persists previously fetched market-data snapshots. The
// screener runs offline against this store; nothing here talks to a
// brokerage.
package store

import (
	"context"
	"time"

	"ccscreen/internal/models"
)

// SnapshotStore is the persistence interface for market-data snapshots.
type SnapshotStore interface {
	// Quotes
	SaveQuotes(ctx context.Context, quotes []models.StockQuote) error
	GetQuotes(ctx context.Context, symbols []string) ([]models.StockQuote, error)

	// Expiration dates
	SaveExpirations(ctx context.Context, symbol string, dates []time.Time) error
	GetExpirations(ctx context.Context, symbol string) ([]time.Time, error)

	// Option chains
	SaveChain(ctx context.Context, contracts []models.OptionContract) error
	GetChain(ctx context.Context, symbol string, expiration time.Time, side models.OptionSide) ([]models.OptionContract, error)

	// Symbols with any stored quote, for inspection commands.
	ListSymbols(ctx context.Context) ([]string, error)

	Close() error
}
