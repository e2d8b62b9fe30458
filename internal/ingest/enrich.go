package ingest

import (
	"math"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/engine"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
)

const (
	// volatilityWindow is the number of trailing daily returns in the
	// volatility estimate.
	volatilityWindow = 30
	// tradingDaysPerYear annualizes the daily return deviation.
	tradingDaysPerYear = 252
)

// Enrich computes the derived per-bar metrics for a chronological series:
// daily return, trailing 7-day moving average of the close, and an
// annualized 30-day volatility score. The input slice is returned with the
// metric fields filled in.
func Enrich(bars []models.DailyBar) []models.DailyBar {
	if len(bars) == 0 {
		return bars
	}

	for i := range bars {
		if bars[i].Open != 0 {
			bars[i].DailyReturn = (bars[i].Close - bars[i].Open) / bars[i].Open
		}
	}

	// MovingAverage only fails on empty input or a bad window, both
	// excluded above.
	ma, err := engine.MovingAverage(bars, engine.DefaultMAWindow)
	if err == nil {
		for i := range bars {
			bars[i].MA7 = ma[i]
		}
	}

	for i := range bars {
		bars[i].Volatility = annualizedVolatility(bars, i)
	}
	return bars
}

// annualizedVolatility is the sample standard deviation of the trailing
// volatilityWindow daily returns ending at index i, scaled by the square
// root of the trading days in a year. Fewer than two samples yield zero.
func annualizedVolatility(bars []models.DailyBar, i int) float64 {
	start := i - volatilityWindow + 1
	if start < 0 {
		start = 0
	}
	n := i - start + 1
	if n < 2 {
		return 0
	}

	mean := 0.0
	for j := start; j <= i; j++ {
		mean += bars[j].DailyReturn
	}
	mean /= float64(n)

	variance := 0.0
	for j := start; j <= i; j++ {
		d := bars[j].DailyReturn - mean
		variance += d * d
	}
	variance /= float64(n - 1)

	return math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear)
}
