// Package fetch retrieves historical daily bars from Yahoo Finance.
package fetch

import (
	"context"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/pkg/errors"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
)

// YahooClient fetches daily price history from Yahoo Finance.
type YahooClient struct {
	// No API key needed for Yahoo Finance
	timeout time.Duration
}

// NewYahooClient creates a new Yahoo Finance history client.
func NewYahooClient(timeout time.Duration) *YahooClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &YahooClient{timeout: timeout}
}

// GetDailyHistory fetches daily bars for a symbol between start and end,
// in ascending date order.
func (c *YahooClient) GetDailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]models.DailyBar, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resultCh := make(chan []models.DailyBar, 1)
	errCh := make(chan error, 1)

	go func() {
		params := &chart.Params{
			Symbol:   symbol,
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Interval: datetime.OneDay,
		}

		iter := chart.Get(params)
		var bars []models.DailyBar
		for iter.Next() {
			b := iter.Bar()
			open, _ := b.Open.Float64()
			high, _ := b.High.Float64()
			low, _ := b.Low.Float64()
			cls, _ := b.Close.Float64()

			day := time.Unix(int64(b.Timestamp), 0).UTC()
			bars = append(bars, models.DailyBar{
				Symbol: symbol,
				Date:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
				Open:   open,
				High:   high,
				Low:    low,
				Close:  cls,
				Volume: float64(b.Volume),
				Source: models.YahooSource,
			})
		}
		if err := iter.Err(); err != nil {
			errCh <- errors.Wrapf(err, "failed to get history for %s from Yahoo Finance", symbol)
			return
		}
		if len(bars) == 0 {
			errCh <- errors.Errorf("no history returned for %s from Yahoo Finance", symbol)
			return
		}
		resultCh <- bars
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "request to Yahoo Finance timed out")
	case err := <-errCh:
		return nil, err
	case bars := <-resultCh:
		return bars, nil
	}
}
