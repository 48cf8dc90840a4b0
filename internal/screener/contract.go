package screener

import (
	"fmt"
	"time"

	"ccscreen/internal/models"
)

// EvaluateContract scores one contract against its underlying quote
// and decides whether it survives the screen. The projection is
// returned either way so callers can log the figures that caused a
// rejection. Predicate order matters only for which reason gets
// reported; every predicate is an independent constraint.
func EvaluateContract(quote models.StockQuote, contract models.OptionContract, now time.Time, cfg Thresholds) (Projection, bool, string) {
	p := Project(quote, contract, now, cfg)

	if contract.Strike > quote.Price {
		return p, false, "it's out of the money"
	}
	if contract.Ask > cfg.MaxAskPrice {
		return p, false, fmt.Sprintf("ask (%.2f) is too high (max_ask_price=%.2f)", contract.Ask, cfg.MaxAskPrice)
	}
	if p.SafetyMargin < cfg.MinSafetyMargin {
		return p, false, fmt.Sprintf("safety margin (%.2f) is too low (safety_margin=%.2f)", p.SafetyMargin, cfg.MinSafetyMargin)
	}
	if p.ProfitPercent < cfg.MinGainPercent {
		return p, false, fmt.Sprintf("profit (%.2f%%) is too low (min_gain_prct=%.2f%%)", p.ProfitPercent, cfg.MinGainPercent)
	}
	if p.ProfitDollars < cfg.MinGainDollars {
		return p, false, fmt.Sprintf("profit ($%.2f) is too low (min_gain=$%.2f)", p.ProfitDollars, cfg.MinGainDollars)
	}
	return p, true, ""
}
