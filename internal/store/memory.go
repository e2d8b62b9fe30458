package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/engine"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
)

// MemoryStore keeps all series in process memory. Reads go through an
// immutable snapshot swapped atomically on every write, so concurrent
// readers never observe a partially updated series. Used in tests and as
// the hot-reload model for the store.
type MemoryStore struct {
	mu   sync.Mutex // serializes writers
	snap atomic.Pointer[memSnapshot]
}

type memSnapshot struct {
	series  map[string][]models.DailyBar
	batches []models.IngestBatch
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	s.snap.Store(&memSnapshot{series: map[string][]models.DailyBar{}})
	return s
}

// Symbols returns all symbols in ascending order.
func (s *MemoryStore) Symbols(ctx context.Context) ([]string, error) {
	snap := s.snap.Load()
	symbols := make([]string, 0, len(snap.series))
	for sym := range snap.series {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols, nil
}

// History returns the most recent limit bars for a symbol in ascending
// date order.
func (s *MemoryStore) History(ctx context.Context, symbol string, limit int) ([]models.DailyBar, error) {
	snap := s.snap.Load()
	series, ok := snap.series[symbol]
	if !ok || len(series) == 0 {
		return nil, fmt.Errorf("%w: %s", engine.ErrUnknownSymbol, symbol)
	}
	start := 0
	if limit > 0 && len(series) > limit {
		start = len(series) - limit
	}
	out := make([]models.DailyBar, len(series)-start)
	copy(out, series[start:])
	return out, nil
}

// InsertBars merges bars into the store, replacing any existing bar for
// the same symbol and date, and publishes a fresh snapshot.
func (s *MemoryStore) InsertBars(ctx context.Context, bars []models.DailyBar) (int, error) {
	if len(bars) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.snap.Load()
	series := make(map[string][]models.DailyBar, len(old.series))
	for sym, bs := range old.series {
		series[sym] = bs
	}

	touched := map[string]bool{}
	for _, bar := range bars {
		merged := append([]models.DailyBar(nil), series[bar.Symbol]...)
		replaced := false
		for i := range merged {
			if merged[i].Date.Equal(bar.Date) {
				merged[i] = bar
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, bar)
		}
		series[bar.Symbol] = merged
		touched[bar.Symbol] = true
	}
	for sym := range touched {
		bs := series[sym]
		sort.Slice(bs, func(i, j int) bool { return bs[i].Date.Before(bs[j].Date) })
	}

	s.snap.Store(&memSnapshot{series: series, batches: old.batches})
	return len(bars), nil
}

// InsertBatch records an ingest batch.
func (s *MemoryStore) InsertBatch(ctx context.Context, batch *models.IngestBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.snap.Load()
	batches := append(append([]models.IngestBatch(nil), old.batches...), *batch)
	s.snap.Store(&memSnapshot{series: old.series, batches: batches})
	return nil
}

// DeleteSymbol removes all bars for a symbol.
func (s *MemoryStore) DeleteSymbol(ctx context.Context, symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.snap.Load()
	series := make(map[string][]models.DailyBar, len(old.series))
	for sym, bs := range old.series {
		if sym != symbol {
			series[sym] = bs
		}
	}
	s.snap.Store(&memSnapshot{series: series, batches: old.batches})
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
