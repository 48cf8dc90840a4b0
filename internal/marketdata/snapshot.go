package marketdata

import (
	"context"
	"time"

	"ccscreen/internal/errors"
	"ccscreen/internal/models"
	"ccscreen/internal/store"
)

// SnapshotGateway serves the Gateway contract from the local snapshot
// store, so the screener runs entirely offline against previously
// fetched data.
type SnapshotGateway struct {
	store store.SnapshotStore
}

// NewSnapshotGateway creates a gateway over a snapshot store.
func NewSnapshotGateway(s store.SnapshotStore) *SnapshotGateway {
	return &SnapshotGateway{store: s}
}

// GetStockQuotes returns the stored quotes for the requested symbols.
// Symbols with no stored quote are omitted, matching the batched
// brokerage call this replaces.
func (g *SnapshotGateway) GetStockQuotes(ctx context.Context, symbols []string) ([]models.StockQuote, error) {
	quotes, err := g.store.GetQuotes(ctx, symbols)
	if err != nil {
		return nil, errors.NewDataError("quotes", "", "snapshot store read failed", err)
	}
	return quotes, nil
}

// GetExpirationDates returns the stored expirations for a symbol. A
// symbol with a quote but no chain data is an acquisition failure:
// the screener treats it as fatal, the same as a failed fetch.
func (g *SnapshotGateway) GetExpirationDates(ctx context.Context, symbol string) ([]time.Time, error) {
	dates, err := g.store.GetExpirations(ctx, symbol)
	if err != nil {
		return nil, errors.NewDataError("expirations", symbol, "snapshot store read failed", err)
	}
	if len(dates) == 0 {
		return nil, errors.NewDataError("expirations", symbol, "no expiration dates in snapshot", errors.ErrDataNotFound)
	}
	return dates, nil
}

// GetOptionChain returns the stored contracts for one symbol/
// expiration/side, filtered to in-the-money contracts relative to
// refPrice.
func (g *SnapshotGateway) GetOptionChain(ctx context.Context, symbol string, expiration time.Time, side models.OptionSide, refPrice float64) ([]models.OptionContract, error) {
	contracts, err := g.store.GetChain(ctx, symbol, expiration, side)
	if err != nil {
		return nil, errors.NewDataError("chain", symbol, "snapshot store read failed", err)
	}

	itm := contracts[:0]
	for _, c := range contracts {
		if c.InTheMoney(refPrice) {
			itm = append(itm, c)
		}
	}
	return itm, nil
}
