package screener

import (
	"math"
	"testing"
	"time"

	"ccscreen/internal/models"
)

const tolerance = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestProjectReferenceScenario(t *testing.T) {
	// price=100, strike=95, ask=3.00, commission=5.45, move=1.0%,
	// delta=0.75: the worked example every draft of this screener
	// agrees on.
	cfg := DefaultThresholds()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	quote := models.StockQuote{Symbol: "TEST", Price: 100.0}
	contract := models.OptionContract{
		Symbol:     "TEST",
		Expiration: now.AddDate(0, 0, 30),
		Strike:     95.0,
		Side:       models.Call,
		Bid:        2.80,
		Ask:        3.00,
	}

	p := Project(quote, contract, now, cfg)

	if !approxEqual(p.CostBasis, 3.0545) {
		t.Errorf("CostBasis = %v, want 3.0545", p.CostBasis)
	}
	if !approxEqual(p.PriceTarget, 101.0) {
		t.Errorf("PriceTarget = %v, want 101.0", p.PriceTarget)
	}
	if !approxEqual(p.OptionValue, 3.75) {
		t.Errorf("OptionValue = %v, want 3.75", p.OptionValue)
	}
	if !approxEqual(p.Profit, 0.6405) {
		t.Errorf("Profit = %v, want 0.6405", p.Profit)
	}
	if !approxEqual(p.ProfitDollars, 64.05) {
		t.Errorf("ProfitDollars = %v, want 64.05", p.ProfitDollars)
	}
	if math.Abs(p.ProfitPercent-20.97) > 0.01 {
		t.Errorf("ProfitPercent = %v, want ~20.97", p.ProfitPercent)
	}
	if !approxEqual(p.SafetyMargin, 5.0) {
		t.Errorf("SafetyMargin = %v, want 5.0", p.SafetyMargin)
	}
	if p.DaysToExpire != 30 {
		t.Errorf("DaysToExpire = %v, want 30", p.DaysToExpire)
	}
	if !approxEqual(p.ProfitPerDay, p.ProfitPercent/30*100) {
		t.Errorf("ProfitPerDay = %v, want %v", p.ProfitPerDay, p.ProfitPercent/30*100)
	}
	if !approxEqual(p.MaxProfitNet, 5.0) {
		t.Errorf("MaxProfitNet = %v, want 5.0", p.MaxProfitNet)
	}
}

func TestProjectDividendAdjustment(t *testing.T) {
	cfg := DefaultThresholds()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	expiration := now.AddDate(0, 0, 30)
	contract := models.OptionContract{
		Symbol:     "TEST",
		Expiration: expiration,
		Strike:     95.0,
		Side:       models.Call,
		Ask:        3.00,
	}

	t.Run("ex-date inside the window folds one payment in", func(t *testing.T) {
		exDate := now.AddDate(0, 0, 10)
		quote := models.StockQuote{Symbol: "TEST", Price: 100.0, Dividend: 0.41, ExDividendDate: &exDate}

		p := Project(quote, contract, now, cfg)
		if !p.DividendCaptured {
			t.Fatal("DividendCaptured = false, want true")
		}
		if !approxEqual(p.DivProfit, p.Profit+0.41) {
			t.Errorf("DivProfit = %v, want %v", p.DivProfit, p.Profit+0.41)
		}
		if !approxEqual(p.DivProfitPercent, p.DivProfit/p.CostBasis*100) {
			t.Errorf("DivProfitPercent = %v", p.DivProfitPercent)
		}
		if !approxEqual(p.DivMaxProfitNet, (1-(95.0-0.41)/100.0)*100) {
			t.Errorf("DivMaxProfitNet = %v", p.DivMaxProfitNet)
		}
		// Unadjusted figures stay untouched.
		if !approxEqual(p.Profit, 0.6405) {
			t.Errorf("Profit = %v, want 0.6405", p.Profit)
		}
	})

	t.Run("no ex-date means adjusted equals unadjusted", func(t *testing.T) {
		quote := models.StockQuote{Symbol: "TEST", Price: 100.0, Dividend: 0.41}

		p := Project(quote, contract, now, cfg)
		if p.DividendCaptured {
			t.Fatal("DividendCaptured = true, want false")
		}
		if p.DivProfitPercent != p.ProfitPercent || p.DivProfitPerDay != p.ProfitPerDay || p.DivMaxProfitNet != p.MaxProfitNet {
			t.Errorf("dividend-adjusted figures diverged without a captured dividend: %+v", p)
		}
	})

	t.Run("ex-date after expiration is not captured", func(t *testing.T) {
		exDate := expiration.AddDate(0, 0, 5)
		quote := models.StockQuote{Symbol: "TEST", Price: 100.0, Dividend: 0.41, ExDividendDate: &exDate}

		p := Project(quote, contract, now, cfg)
		if p.DividendCaptured {
			t.Error("DividendCaptured = true for ex-date past expiration")
		}
	})
}

func TestDaysToExpire(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiration time.Time
		want       int
	}{
		{"exactly 30 days", now.AddDate(0, 0, 30), 30},
		{"partial day truncates down", now.Add(29*24*time.Hour + 12*time.Hour), 29},
		{"same day", now.Add(6 * time.Hour), 0},
		{"already expired", now.Add(-36 * time.Hour), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysToExpire(now, tt.expiration); got != tt.want {
				t.Errorf("DaysToExpire() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProfitPerDayZeroDays(t *testing.T) {
	cfg := DefaultThresholds()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	quote := models.StockQuote{Symbol: "TEST", Price: 100.0}
	contract := models.OptionContract{
		Symbol:     "TEST",
		Expiration: now.Add(6 * time.Hour), // expires today
		Strike:     95.0,
		Side:       models.Call,
		Ask:        3.00,
	}

	p := Project(quote, contract, now, cfg)
	if p.ProfitPerDay != 0 {
		t.Errorf("ProfitPerDay = %v for zero days to expire, want 0", p.ProfitPerDay)
	}
}
