// Package models provides domain models for the screener.
package models

import (
	"fmt"
	"time"
)

// NegativePESentinel is returned by PE for negative price/earnings ratios.
// It is large enough to fail any sensible upper-bound P/E filter.
const NegativePESentinel = 99999.99

// Environment selects between the live brokerage endpoints and the
// static sandbox endpoints. Sandbox data is often stale, and a couple of
// screening rules are relaxed for it.
type Environment string

const (
	EnvLive    Environment = "live"
	EnvSandbox Environment = "sandbox"
)

// StockQuote is a point-in-time quote for an underlying. It is fully
// populated at construction and treated as read-only for the rest of
// the screening run.
type StockQuote struct {
	Symbol         string
	Price          float64
	AnnualDividend float64
	Dividend       float64 // per-payment amount
	EPS            float64
	ExDividendDate *time.Time
	High52         float64
	Low52          float64
}

// PE returns the price/earnings ratio. Zero earnings yields 0 rather
// than dividing by zero; a negative ratio yields NegativePESentinel so
// the quote fails any max-P/E filter.
func (q StockQuote) PE() float64 {
	if q.EPS == 0 {
		return 0
	}
	pe := q.Price / q.EPS
	if pe < 0 {
		return NegativePESentinel
	}
	return pe
}

// Yield returns the annual dividend yield as a percentage of price.
func (q StockQuote) Yield() float64 {
	if q.Price == 0 {
		return 0
	}
	return q.AnnualDividend * 100 / q.Price
}

// IntrinsicValue returns the in-the-money amount of a call at the
// given strike. Negative when the strike is above the price.
func (q StockQuote) IntrinsicValue(strike float64) float64 {
	return q.Price - strike
}

// ExDividendDateString renders the ex-dividend date as YYYY-MM-DD,
// or "n/a" when the underlying pays no dividend.
func (q StockQuote) ExDividendDateString() string {
	if q.ExDividendDate == nil {
		return "n/a"
	}
	return q.ExDividendDate.Format("2006-01-02")
}

// PaysDividendBefore reports whether the underlying goes ex-dividend
// strictly between now and expiration, i.e. whether one dividend
// payment would be captured while holding a covered position through
// expiration.
func (q StockQuote) PaysDividendBefore(now, expiration time.Time) bool {
	if q.ExDividendDate == nil {
		return false
	}
	ex := *q.ExDividendDate
	return ex.After(now) && ex.Before(expiration)
}

// OptionSide tags a contract as a call or a put.
type OptionSide string

const (
	Call OptionSide = "Call"
	Put  OptionSide = "Put"
)

// OptionContract is a single contract from an option chain. Like
// StockQuote it is populated once and read-only thereafter. Many
// contracts reference one StockQuote by Symbol.
type OptionContract struct {
	Symbol       string
	Expiration   time.Time
	Strike       float64
	Side         OptionSide
	Bid          float64
	Ask          float64
	BidSize      int64
	AskSize      int64
	OpenInterest int64
	LastPrice    float64
}

// InTheMoney reports whether the contract is in the money relative to
// the given underlying price: strike at or below price for a call,
// strike at or above price for a put.
func (c OptionContract) InTheMoney(price float64) bool {
	if c.Side == Put {
		return c.Strike >= price
	}
	return c.Strike <= price
}

// ExpirationString renders the expiration as YYYY-MM-DD.
func (c OptionContract) ExpirationString() string {
	return c.Expiration.Format("2006-01-02")
}

// Describe returns a short human-readable label used in skip logs.
func (c OptionContract) Describe() string {
	return fmt.Sprintf("%s %s %.2f %s", c.Symbol, c.ExpirationString(), c.Strike, c.Side)
}
