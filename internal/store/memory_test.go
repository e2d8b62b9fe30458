package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/engine"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
)

func testBar(symbol string, day int, close float64) models.DailyBar {
	return models.DailyBar{
		Symbol: symbol,
		Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Open:   close,
		High:   close,
		Low:    close,
		Close:  close,
	}
}

func TestMemoryStore_SymbolsAndHistory(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	// Out-of-order insert must still produce a chronological series.
	bars := []models.DailyBar{
		testBar("TCS.NS", 2, 3520),
		testBar("TCS.NS", 0, 3500),
		testBar("TCS.NS", 1, 3510),
		testBar("INFY.NS", 0, 1500),
	}
	if n, err := s.InsertBars(ctx, bars); err != nil || n != 4 {
		t.Fatalf("insert: n=%d err=%v", n, err)
	}

	symbols, err := s.Symbols(ctx)
	if err != nil {
		t.Fatalf("symbols: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "INFY.NS" || symbols[1] != "TCS.NS" {
		t.Errorf("expected sorted [INFY.NS TCS.NS], got %v", symbols)
	}

	history, err := s.History(ctx, "TCS.NS", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if !history[i-1].Date.Before(history[i].Date) {
			t.Errorf("history not in ascending date order at %d", i)
		}
	}
}

func TestMemoryStore_HistoryLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var bars []models.DailyBar
	for i := 0; i < 10; i++ {
		bars = append(bars, testBar("INFY.NS", i, 1500+float64(i)))
	}
	if _, err := s.InsertBars(ctx, bars); err != nil {
		t.Fatalf("insert: %v", err)
	}

	history, err := s.History(ctx, "INFY.NS", 3)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(history))
	}
	if history[0].Close != 1507 || history[2].Close != 1509 {
		t.Errorf("expected the most recent 3 bars, got closes %f..%f",
			history[0].Close, history[2].Close)
	}
}

func TestMemoryStore_UnknownSymbol(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.History(context.Background(), "ZZZZ", 0); !errors.Is(err, engine.ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestMemoryStore_UpsertReplacesSameDate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.InsertBars(ctx, []models.DailyBar{testBar("INFY.NS", 0, 1500)}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.InsertBars(ctx, []models.DailyBar{testBar("INFY.NS", 0, 1550)}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	history, err := s.History(ctx, "INFY.NS", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Close != 1550 {
		t.Errorf("expected single bar with close 1550, got %+v", history)
	}
}

func TestMemoryStore_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.InsertBars(ctx, []models.DailyBar{testBar("INFY.NS", 0, 1500)}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	before, err := s.History(ctx, "INFY.NS", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}

	if _, err := s.InsertBars(ctx, []models.DailyBar{testBar("INFY.NS", 1, 1600)}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// The slice handed out earlier must not grow under the reader.
	if len(before) != 1 {
		t.Errorf("snapshot read mutated by later write: %d bars", len(before))
	}

	if err := s.DeleteSymbol(ctx, "INFY.NS"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.History(ctx, "INFY.NS", 0); !errors.Is(err, engine.ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol after delete, got %v", err)
	}
}
