package screener

import "ccscreen/internal/models"

// Thresholds is the flat set of screening knobs for one run. It is
// built from the loaded configuration (plus any flag overrides) before
// the pipeline starts and never mutated afterwards.
type Thresholds struct {
	MinStockPrice    float64
	MaxAskPrice      float64
	StockPriceFactor float64
	MinYield         float64
	MaxPE            float64 // 0 disables the P/E predicate
	MinDays          int
	MaxDays          int
	MinSafetyMargin  float64
	MinGainPercent   float64
	MinGainDollars   float64
	ProjectedMove    float64
	DeltaFactor      float64
	Commission       float64

	Environment models.Environment
}

// MaxStockPrice is the indirect cap on the underlying's price: the
// configured max option ask times a scaling factor.
func (t Thresholds) MaxStockPrice() float64 {
	return t.MaxAskPrice * t.StockPriceFactor
}

// DefaultThresholds returns the documented defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinStockPrice:    10.0,
		MaxAskPrice:      4.0,
		StockPriceFactor: 50.0,
		MinYield:         1.0,
		MaxPE:            30.0,
		MinDays:          14,
		MaxDays:          60,
		MinSafetyMargin:  3.0,
		MinGainPercent:   10.0,
		MinGainDollars:   30.0,
		ProjectedMove:    1.0,
		DeltaFactor:      0.75,
		Commission:       5.45,
		Environment:      models.EnvLive,
	}
}
