package models

import (
	"testing"
	"time"
)

func TestStockQuotePE(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		eps   float64
		want  float64
	}{
		{"zero eps yields zero, not a division", 42.0, 0, 0},
		{"positive ratio", 100.0, 4.0, 25.0},
		{"negative earnings hits the sentinel", 100.0, -2.5, NegativePESentinel},
		{"negative price hits the sentinel", -10.0, 2.0, NegativePESentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := StockQuote{Symbol: "TEST", Price: tt.price, EPS: tt.eps}
			if got := q.PE(); got != tt.want {
				t.Errorf("PE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStockQuoteYield(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		dividend float64
		want     float64
	}{
		{"zero price yields zero, not a division", 0, 1.64, 0},
		{"regular yield", 50.0, 1.0, 2.0},
		{"no dividend", 50.0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := StockQuote{Symbol: "TEST", Price: tt.price, AnnualDividend: tt.dividend}
			if got := q.Yield(); got != tt.want {
				t.Errorf("Yield() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaysDividendBefore(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	expiration := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	day := func(d time.Time) *time.Time { return &d }

	tests := []struct {
		name   string
		exDate *time.Time
		want   bool
	}{
		{"no ex-dividend date", nil, false},
		{"inside the window", day(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)), true},
		{"before now", day(time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)), false},
		{"after expiration", day(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)), false},
		{"exactly at now is excluded", day(now), false},
		{"exactly at expiration is excluded", day(expiration), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := StockQuote{Symbol: "TEST", Price: 50, ExDividendDate: tt.exDate}
			if got := q.PaysDividendBefore(now, expiration); got != tt.want {
				t.Errorf("PaysDividendBefore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInTheMoney(t *testing.T) {
	tests := []struct {
		name   string
		side   OptionSide
		strike float64
		price  float64
		want   bool
	}{
		{"call below price", Call, 95, 100, true},
		{"call at price", Call, 100, 100, true},
		{"call above price", Call, 105, 100, false},
		{"put above price", Put, 105, 100, true},
		{"put below price", Put, 95, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := OptionContract{Symbol: "TEST", Side: tt.side, Strike: tt.strike}
			if got := c.InTheMoney(tt.price); got != tt.want {
				t.Errorf("InTheMoney(%v) = %v, want %v", tt.price, got, tt.want)
			}
		})
	}
}

func TestExDividendDateString(t *testing.T) {
	q := StockQuote{Symbol: "TEST"}
	if got := q.ExDividendDateString(); got != "n/a" {
		t.Errorf("ExDividendDateString() = %q, want n/a", got)
	}

	d := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	q.ExDividendDate = &d
	if got := q.ExDividendDateString(); got != "2026-09-10" {
		t.Errorf("ExDividendDateString() = %q, want 2026-09-10", got)
	}
}
