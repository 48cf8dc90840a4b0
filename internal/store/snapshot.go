package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"ccscreen/internal/models"
)

// Snapshot is the on-disk JSON shape of previously fetched market
// data. One file can carry any mix of quotes and chains.
type Snapshot struct {
	Quotes []SnapshotQuote `json:"quotes"`
	Chains []SnapshotChain `json:"chains"`
}

// SnapshotQuote mirrors models.StockQuote with a string date.
type SnapshotQuote struct {
	Symbol         string  `json:"symbol"`
	Price          float64 `json:"price"`
	AnnualDividend float64 `json:"annual_dividend"`
	Dividend       float64 `json:"dividend"`
	EPS            float64 `json:"eps"`
	ExDividendDate string  `json:"ex_dividend_date,omitempty"` // YYYY-MM-DD
	High52         float64 `json:"high52"`
	Low52          float64 `json:"low52"`
}

// SnapshotChain is one symbol/expiration slice of an option chain.
type SnapshotChain struct {
	Symbol     string             `json:"symbol"`
	Expiration string             `json:"expiration"` // YYYY-MM-DD
	Calls      []SnapshotContract `json:"calls"`
	Puts       []SnapshotContract `json:"puts"`
}

// SnapshotContract is one contract within a chain.
type SnapshotContract struct {
	Strike       float64 `json:"strike"`
	Bid          float64 `json:"bid"`
	Ask          float64 `json:"ask"`
	BidSize      int64   `json:"bid_size"`
	AskSize      int64   `json:"ask_size"`
	OpenInterest int64   `json:"open_interest"`
	LastPrice    float64 `json:"last_price"`
}

// ImportSnapshot reads a snapshot file into the store. Expiration
// lists are rebuilt from the chains present in the file, in file
// order. It returns the number of quotes and contracts imported.
func ImportSnapshot(ctx context.Context, s SnapshotStore, path string) (int, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return 0, 0, fmt.Errorf("parsing snapshot: %w", err)
	}

	quotes := make([]models.StockQuote, 0, len(snap.Quotes))
	for _, sq := range snap.Quotes {
		q := models.StockQuote{
			Symbol:         sq.Symbol,
			Price:          sq.Price,
			AnnualDividend: sq.AnnualDividend,
			Dividend:       sq.Dividend,
			EPS:            sq.EPS,
			High52:         sq.High52,
			Low52:          sq.Low52,
		}
		if sq.ExDividendDate != "" {
			d, err := time.Parse("2006-01-02", sq.ExDividendDate)
			if err != nil {
				return 0, 0, fmt.Errorf("quote %s: bad ex_dividend_date %q: %w", sq.Symbol, sq.ExDividendDate, err)
			}
			q.ExDividendDate = &d
		}
		quotes = append(quotes, q)
	}
	if err := s.SaveQuotes(ctx, quotes); err != nil {
		return 0, 0, err
	}

	contractCount := 0
	expirations := make(map[string][]time.Time)
	for _, chain := range snap.Chains {
		expiration, err := time.Parse("2006-01-02", chain.Expiration)
		if err != nil {
			return 0, 0, fmt.Errorf("chain %s: bad expiration %q: %w", chain.Symbol, chain.Expiration, err)
		}
		expirations[chain.Symbol] = append(expirations[chain.Symbol], expiration)

		contracts := make([]models.OptionContract, 0, len(chain.Calls)+len(chain.Puts))
		for _, c := range chain.Calls {
			contracts = append(contracts, snapshotContract(chain.Symbol, expiration, models.Call, c))
		}
		for _, c := range chain.Puts {
			contracts = append(contracts, snapshotContract(chain.Symbol, expiration, models.Put, c))
		}
		if err := s.SaveChain(ctx, contracts); err != nil {
			return 0, 0, err
		}
		contractCount += len(contracts)
	}

	for symbol, dates := range expirations {
		if err := s.SaveExpirations(ctx, symbol, dates); err != nil {
			return 0, 0, err
		}
	}
	return len(quotes), contractCount, nil
}

func snapshotContract(symbol string, expiration time.Time, side models.OptionSide, c SnapshotContract) models.OptionContract {
	return models.OptionContract{
		Symbol:       symbol,
		Expiration:   expiration,
		Strike:       c.Strike,
		Side:         side,
		Bid:          c.Bid,
		Ask:          c.Ask,
		BidSize:      c.BidSize,
		AskSize:      c.AskSize,
		OpenInterest: c.OpenInterest,
		LastPrice:    c.LastPrice,
	}
}
