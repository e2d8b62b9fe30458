package engine

import (
	"fmt"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
)

// Comparison holds the normalized two-symbol comparison over a shared
// date window.
type Comparison struct {
	Symbol1 string
	Symbol2 string
	Days    int
	Rows    []models.ComparisonRow
}

// Compare restricts both series to their last days records, aligns them on
// the intersection of their trading dates, and rebases each close series so
// that its first aligned value is exactly 100.
//
// Alignment policy: the two series may cover different trading-day sets
// (different market holidays, listing dates, or data gaps), so taking the
// last N records of each and zipping by index can silently pair different
// dates. Only dates present in both restricted series are emitted, in
// chronological order.
func Compare(symbol1 string, series1 []models.DailyBar, symbol2 string, series2 []models.DailyBar, days int) (*Comparison, error) {
	if symbol1 == symbol2 {
		return nil, fmt.Errorf("%w: %s", ErrSameSymbol, symbol1)
	}
	if days < 1 {
		return nil, fmt.Errorf("%w: days must be a positive integer, got %d", ErrInvalidInput, days)
	}
	if len(series1) == 0 || len(series2) == 0 {
		return nil, fmt.Errorf("%w: empty series", ErrInsufficientData)
	}

	a := tail(series1, days)
	b := tail(series2, days)

	byDate := make(map[string]float64, len(b))
	for _, bar := range b {
		byDate[bar.DateString()] = bar.Close
	}

	rows := make([]models.ComparisonRow, 0, len(a))
	var base1, base2 float64
	for _, bar := range a {
		close2, ok := byDate[bar.DateString()]
		if !ok {
			continue
		}
		if len(rows) == 0 {
			base1 = bar.Close
			base2 = close2
		}
		rows = append(rows, models.ComparisonRow{
			Date:       bar.DateString(),
			Symbols:    [2]string{symbol1, symbol2},
			Normalized: [2]float64{100 * bar.Close / base1, 100 * close2 / base2},
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no overlapping trading days between %s and %s", ErrInsufficientData, symbol1, symbol2)
	}

	return &Comparison{
		Symbol1: symbol1,
		Symbol2: symbol2,
		Days:    days,
		Rows:    rows,
	}, nil
}

func tail(bars []models.DailyBar, n int) []models.DailyBar {
	if len(bars) <= n {
		return bars
	}
	return bars[len(bars)-n:]
}
