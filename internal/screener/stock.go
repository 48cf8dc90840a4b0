package screener

import (
	"fmt"

	"ccscreen/internal/models"
)

// EvaluateStock applies the stock-level filter stages to one quote.
// It returns true when the stock should proceed to option-chain
// screening, or false plus a human-readable skip reason. The reason is
// observability only; callers never branch on it.
func EvaluateStock(quote models.StockQuote, cfg Thresholds) (bool, string) {
	if quote.Price < cfg.MinStockPrice {
		return false, fmt.Sprintf("price (%.2f) is too low (min_stock_price=%.2f)", quote.Price, cfg.MinStockPrice)
	}
	if quote.Price > cfg.MaxStockPrice() {
		return false, fmt.Sprintf("price (%.2f) is too high (max=%.2f)", quote.Price, cfg.MaxStockPrice())
	}
	if quote.Yield() < cfg.MinYield {
		return false, fmt.Sprintf("yield (%.2f) is too low (min_yield=%.2f)", quote.Yield(), cfg.MinYield)
	}
	// max_pe == 0 means no P/E cap at all.
	if cfg.MaxPE != 0 && quote.PE() > cfg.MaxPE {
		return false, fmt.Sprintf("P/E ratio (%.2f) is too high (max_pe=%.2f)", quote.PE(), cfg.MaxPE)
	}
	return true, ""
}
