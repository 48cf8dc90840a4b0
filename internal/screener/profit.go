package screener

import (
	"math"
	"time"

	"ccscreen/internal/models"
)

// The profit model is pure arithmetic over already-fetched quotes.
// Both the contract scorer and the report builder call into it, so the
// two always agree bit-for-bit on the same inputs.

// SafetyMargin returns the percentage cushion between the underlying
// price and the strike: how far the stock can fall before the covered
// position loses its intrinsic coverage.
func SafetyMargin(price, strike float64) float64 {
	intrinsicValue := price - strike
	return intrinsicValue * 100 / price
}

// CostBasis returns the effective per-share amount paid for the
// contract: the ask plus the per-share commission.
func CostBasis(ask, commission float64) float64 {
	return ask + commission/100
}

// PriceTarget returns the underlying price after the projected move,
// expressed in percent.
func PriceTarget(price, projectedMove float64) float64 {
	return price * (1 + projectedMove/100)
}

// ProjectedOptionValue approximates the option's value at the price
// target using a flat delta factor.
func ProjectedOptionValue(price, priceTarget, ask, deltaFactor float64) float64 {
	priceChange := priceTarget - price
	return ask + priceChange*deltaFactor
}

// DaysToExpire returns the whole number of days between now and
// expiration, truncated toward minus infinity.
func DaysToExpire(now, expiration time.Time) int {
	return int(math.Floor(expiration.Sub(now).Hours() / 24))
}

// Projection holds the profit figures for one contract at the
// configured projected move. The Div* fields assume one dividend
// payment is captured during the holding period; when no ex-dividend
// date falls inside the window they equal their unadjusted
// counterparts. The contract filter only ever looks at the unadjusted
// figures.
type Projection struct {
	SafetyMargin  float64
	CostBasis     float64
	PriceTarget   float64
	OptionValue   float64
	Profit        float64 // per share
	ProfitDollars float64 // per contract
	ProfitPercent float64
	DaysToExpire  int
	ProfitPerDay  float64 // basis points of return per day held
	MaxProfitNet  float64 // margin if assigned at maximum profit

	DividendCaptured bool
	DivProfit        float64
	DivProfitDollars float64
	DivProfitPercent float64
	DivProfitPerDay  float64
	DivMaxProfitNet  float64
}

// Project computes the full set of profit figures for a contract
// against its underlying's price. All quantities follow from the ask,
// the commission and the projected move; price must be non-zero.
func Project(quote models.StockQuote, contract models.OptionContract, now time.Time, cfg Thresholds) Projection {
	return ProjectAtPrice(quote, quote.Price, contract, now, cfg)
}

// ProjectAtPrice is Project with an explicit underlying price. The
// report builder uses it when it has to substitute a synthetic price
// for a symbol missing from the cache.
func ProjectAtPrice(quote models.StockQuote, price float64, contract models.OptionContract, now time.Time, cfg Thresholds) Projection {
	p := Projection{
		SafetyMargin: SafetyMargin(price, contract.Strike),
		CostBasis:    CostBasis(contract.Ask, cfg.Commission),
		PriceTarget:  PriceTarget(price, cfg.ProjectedMove),
		DaysToExpire: DaysToExpire(now, contract.Expiration),
	}
	p.OptionValue = ProjectedOptionValue(price, p.PriceTarget, contract.Ask, cfg.DeltaFactor)
	p.Profit = (p.OptionValue - p.CostBasis) - cfg.Commission/100
	p.ProfitDollars = p.Profit * 100
	p.ProfitPercent = p.Profit / p.CostBasis * 100
	p.MaxProfitNet = (1 - contract.Strike/price) * 100
	if p.DaysToExpire > 0 {
		p.ProfitPerDay = p.ProfitPercent / float64(p.DaysToExpire) * 100
	}

	// Dividend-adjusted variant: fold one captured payment into the
	// profit and the assignment safety figure.
	p.DivProfit = p.Profit
	p.DivProfitDollars = p.ProfitDollars
	p.DivProfitPercent = p.ProfitPercent
	p.DivProfitPerDay = p.ProfitPerDay
	p.DivMaxProfitNet = p.MaxProfitNet
	if quote.PaysDividendBefore(now, contract.Expiration) {
		p.DividendCaptured = true
		p.DivProfit = p.Profit + quote.Dividend
		p.DivProfitDollars = p.DivProfit * 100
		p.DivProfitPercent = p.DivProfit / p.CostBasis * 100
		p.DivMaxProfitNet = (1 - (contract.Strike-quote.Dividend)/price) * 100
		if p.DaysToExpire > 0 {
			p.DivProfitPerDay = p.DivProfitPercent / float64(p.DaysToExpire) * 100
		}
	}
	return p
}
