// Package models provides the shared data models for the stock dashboard
// backend. These structs are the central definitions for daily price data
// and the derived series the API serves.
package models

import (
	"time"
)

// DataSource identifies where a batch of bars came from.
type DataSource string

const (
	YahooSource  DataSource = "yahoo"
	SampleSource DataSource = "sample"
	ManualSource DataSource = "manual"
)

// DailyBar represents one trading day of price data for a symbol,
// including the derived metrics computed at ingest time.
type DailyBar struct {
	ID          string     `json:"id,omitempty" db:"id"`
	Symbol      string     `json:"symbol" db:"symbol" validate:"required"`
	Date        time.Time  `json:"date" db:"date" validate:"required"`
	Open        float64    `json:"open" db:"open" validate:"required,gt=0"`
	High        float64    `json:"high" db:"high" validate:"required,gt=0"`
	Low         float64    `json:"low" db:"low" validate:"required,gt=0"`
	Close       float64    `json:"close" db:"close" validate:"required,gt=0"`
	Volume      float64    `json:"volume" db:"volume" validate:"gte=0"`
	DailyReturn float64    `json:"daily_return" db:"daily_return"`
	MA7         *float64   `json:"ma_7" db:"ma_7"`
	Volatility  float64    `json:"volatility" db:"volatility"`
	Source      DataSource `json:"source,omitempty" db:"source"`
	BatchID     string     `json:"batch_id,omitempty" db:"batch_id"`
	CreatedAt   time.Time  `json:"created_at,omitempty" db:"created_at"`
}

// DateString returns the bar's date in the YYYY-MM-DD form used on the wire.
func (b DailyBar) DateString() string {
	return b.Date.Format(DateLayout)
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// SummaryStats holds the 52-week aggregate statistics for a symbol.
type SummaryStats struct {
	Symbol   string  `json:"symbol"`
	High52w  float64 `json:"high_52w"`
	Low52w   float64 `json:"low_52w"`
	AvgClose float64 `json:"avg_close"`
}

// SeriesPoint is a single row of the /data response: the raw bar fields
// plus the trailing moving average, which is null until enough history
// exists.
type SeriesPoint struct {
	Date        string   `json:"date"`
	Open        float64  `json:"open"`
	High        float64  `json:"high"`
	Low         float64  `json:"low"`
	Close       float64  `json:"close"`
	Volume      float64  `json:"volume"`
	DailyReturn float64  `json:"daily_return"`
	MA7         *float64 `json:"ma_7"`
	Volatility  float64  `json:"volatility"`
	Symbol      string   `json:"symbol"`
}

// ComparisonRow is one aligned date of a two-symbol comparison. The
// normalized values are keyed by "<SYMBOL>_normalized" on the wire, so the
// row carries the symbols rather than fixed field names.
type ComparisonRow struct {
	Date       string
	Symbols    [2]string
	Normalized [2]float64
}

// IngestBatch records one run of the ingest pipeline.
type IngestBatch struct {
	ID        string     `json:"id" db:"id" validate:"required"`
	Symbol    string     `json:"symbol" db:"symbol" validate:"required"`
	Source    DataSource `json:"source" db:"source" validate:"required"`
	BarCount  int        `json:"bar_count" db:"bar_count"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
