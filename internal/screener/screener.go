// Package screener implements the covered-call screening pipeline: the
// stock, expiration-date and contract filter stages and the profit
// model they share.
package screener

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"ccscreen/internal/marketdata"
	"ccscreen/internal/models"
)

// Result is the outcome of one screening run: the surviving contracts
// plus the symbol cache the report builder needs to render them. Now is
// the fixed timestamp all day-delta arithmetic in the run used.
type Result struct {
	Keepers []models.OptionContract
	Quotes  map[string]models.StockQuote
	Now     time.Time
}

// Screener drives one symbol at a time through the filter cascade,
// strictly sequentially. The only mutable state is the per-run symbol
// cache, written at most once per symbol.
type Screener struct {
	gateway marketdata.Gateway
	logger  zerolog.Logger
}

// New creates a Screener over the given acquisition gateway.
func New(gateway marketdata.Gateway, logger zerolog.Logger) *Screener {
	return &Screener{gateway: gateway, logger: logger}
}

// Run screens the watchlist symbols and returns the keepers. The run's
// "now" is captured once here, so every day-delta in the run is
// consistent even when the gateway calls take seconds. A gateway error
// aborts the run; there is no retry or partial-result salvage.
func (s *Screener) Run(ctx context.Context, symbols []string, cfg Thresholds) (*Result, error) {
	result := &Result{
		Quotes: make(map[string]models.StockQuote),
		Now:    time.Now(),
	}

	quotes, err := s.gateway.GetStockQuotes(ctx, symbols)
	if err != nil {
		return nil, err
	}

	for _, quote := range quotes {
		symbol := quote.Symbol
		log := s.logger.With().Str("symbol", symbol).Logger()

		if pass, reason := EvaluateStock(quote, cfg); !pass {
			log.Info().Msgf("skipping %s, %s", symbol, reason)
			continue
		}

		// A symbol already decided this run is not re-fetched. Sandbox
		// endpoints can hand back the same symbol more than once.
		if _, seen := result.Quotes[symbol]; seen {
			continue
		}

		log.Debug().Msg("fetching option chain data")

		dates, err := s.gateway.GetExpirationDates(ctx, symbol)
		if err != nil {
			return nil, err
		}

		for _, date := range dates {
			pass, reason := EvaluateExpiration(date, result.Now, cfg)
			if reason != "" {
				log.Info().Msgf("skipping date %s for %s, %s", date.Format("2006-01-02"), symbol, reason)
			}
			if !pass {
				continue
			}

			contracts, err := s.gateway.GetOptionChain(ctx, symbol, date, models.Call, quote.Price)
			if err != nil {
				return nil, err
			}

			for _, contract := range contracts {
				proj, keep, reason := EvaluateContract(quote, contract, result.Now, cfg)
				if !keep {
					log.Info().Msgf("skipping %s, %s", contract.Describe(), reason)
					continue
				}
				log.Debug().
					Float64("safety_margin", proj.SafetyMargin).
					Float64("profit_prct", proj.ProfitPercent).
					Msgf("keeping %s", contract.Describe())
				result.Keepers = append(result.Keepers, contract)
			}
			result.Quotes[symbol] = quote
		}
	}

	return result, nil
}
