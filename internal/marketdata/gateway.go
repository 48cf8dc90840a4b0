// Package marketdata defines the acquisition gateway the screener
// consumes. The screener never fetches anything itself; it runs against
// previously materialized quote and contract records served by a
// Gateway implementation.
package marketdata

import (
	"context"
	"time"

	"ccscreen/internal/models"
)

// Gateway supplies stock quotes, expiration dates and option-chain
// contracts. Calls are synchronous, internally batched and idempotent;
// the screener issues one logical call per symbol/date and does not
// retry. Any error is treated as fatal for the run.
type Gateway interface {
	// GetStockQuotes returns one fully populated quote per known
	// symbol. Unknown symbols are omitted, not errors.
	GetStockQuotes(ctx context.Context, symbols []string) ([]models.StockQuote, error)

	// GetExpirationDates returns the available expiration dates for a
	// symbol, in chain order.
	GetExpirationDates(ctx context.Context, symbol string) ([]time.Time, error)

	// GetOptionChain returns the contracts for one symbol/expiration/
	// side, filtered to in-the-money contracts relative to refPrice.
	GetOptionChain(ctx context.Context, symbol string, expiration time.Time, side models.OptionSide, refPrice float64) ([]models.OptionContract, error)
}
