package engine

import (
	"fmt"
	"math"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
)

// SummaryWindow is the number of trailing records covered by the 52-week
// summary. The window is counted in records, not calendar days: 252 is the
// approximate number of trading days in a year, so on daily data the last
// 252 bars span roughly 52 weeks regardless of market holidays.
const SummaryWindow = 252

// Summary computes the high, low, and average close over the trailing
// window records of the series. Series shorter than the window are used
// in full.
func Summary(bars []models.DailyBar, window int) (models.SummaryStats, error) {
	if window < 1 {
		return models.SummaryStats{}, fmt.Errorf("%w: window must be >= 1, got %d", ErrInvalidInput, window)
	}
	if len(bars) == 0 {
		return models.SummaryStats{}, fmt.Errorf("%w: empty series", ErrInvalidInput)
	}

	start := len(bars) - window
	if start < 0 {
		start = 0
	}

	high := math.Inf(-1)
	low := math.Inf(1)
	sum := 0.0
	for _, b := range bars[start:] {
		if b.Close > high {
			high = b.Close
		}
		if b.Close < low {
			low = b.Close
		}
		sum += b.Close
	}
	n := len(bars) - start

	return models.SummaryStats{
		Symbol:   bars[len(bars)-1].Symbol,
		High52w:  high,
		Low52w:   low,
		AvgClose: sum / float64(n),
	}, nil
}
