package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
)

func barsFromCloses(symbol string, closes []float64) []models.DailyBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.DailyBar, len(closes))
	for i, c := range closes {
		bars[i] = models.DailyBar{
			Symbol: symbol,
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
		}
	}
	return bars
}

func TestMovingAverage_SevenDay(t *testing.T) {
	bars := barsFromCloses("INFY.NS", []float64{10, 20, 15, 25, 30, 10, 5, 40})

	ma, err := MovingAverage(bars, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ma) != len(bars) {
		t.Fatalf("expected %d points, got %d", len(bars), len(ma))
	}

	for i := 0; i < 6; i++ {
		if ma[i] != nil {
			t.Errorf("point %d: expected nil MA with insufficient history, got %f", i, *ma[i])
		}
	}
	if ma[6] == nil || math.Abs(*ma[6]-115.0/7.0) > 1e-9 {
		t.Errorf("point 6: expected %.6f, got %v", 115.0/7.0, ma[6])
	}
	if ma[7] == nil || math.Abs(*ma[7]-145.0/7.0) > 1e-9 {
		t.Errorf("point 7: expected %.6f, got %v", 145.0/7.0, ma[7])
	}
}

func TestMovingAverage_WindowOne(t *testing.T) {
	bars := barsFromCloses("TCS.NS", []float64{100, 200, 300})

	ma, err := MovingAverage(bars, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, b := range bars {
		if ma[i] == nil || *ma[i] != b.Close {
			t.Errorf("point %d: window 1 MA should equal the close %.1f, got %v", i, b.Close, ma[i])
		}
	}
}

func TestMovingAverage_ShortSeries(t *testing.T) {
	bars := barsFromCloses("TCS.NS", []float64{100, 200, 300})

	ma, err := MovingAverage(bars, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range ma {
		if p != nil {
			t.Errorf("point %d: expected nil MA for series shorter than the window, got %f", i, *p)
		}
	}
}

func TestMovingAverage_InvalidInput(t *testing.T) {
	if _, err := MovingAverage(nil, 7); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty series: expected ErrInvalidInput, got %v", err)
	}
	bars := barsFromCloses("INFY.NS", []float64{10})
	if _, err := MovingAverage(bars, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero window: expected ErrInvalidInput, got %v", err)
	}
}

func TestMovingAverage_Idempotent(t *testing.T) {
	bars := barsFromCloses("INFY.NS", []float64{10, 20, 15, 25, 30, 10, 5, 40})

	first, err := MovingAverage(bars, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := MovingAverage(bars, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range first {
		switch {
		case first[i] == nil && second[i] == nil:
		case first[i] != nil && second[i] != nil && *first[i] == *second[i]:
		default:
			t.Errorf("point %d: repeated calls disagree: %v vs %v", i, first[i], second[i])
		}
	}
}
