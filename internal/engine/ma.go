// Package engine computes derived series from raw daily price data:
// trailing moving averages, 52-week aggregates, and normalized two-symbol
// comparisons. Every function is pure: it reads its input slices, allocates
// its output, and touches no shared state, so concurrent callers need no
// synchronization.
package engine

import (
	"fmt"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
)

// DefaultMAWindow is the moving-average window served by the API.
const DefaultMAWindow = 7

// MovingAverage computes the trailing simple moving average of the close
// price for each bar in the series. The result is parallel to the input:
// entry i is nil while fewer than window samples exist (i < window-1), and
// the exact arithmetic mean of closes[i-window+1 .. i] afterwards.
func MovingAverage(bars []models.DailyBar, window int) ([]*float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: window must be >= 1, got %d", ErrInvalidInput, window)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: empty series", ErrInvalidInput)
	}

	out := make([]*float64, len(bars))
	for i := window - 1; i < len(bars); i++ {
		// Sum the window directly each time rather than maintaining a
		// rolling sum, so every mean is exact and free of accumulated
		// floating-point drift.
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += bars[j].Close
		}
		ma := sum / float64(window)
		out[i] = &ma
	}
	return out, nil
}
