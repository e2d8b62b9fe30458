// Package ingest prepares raw daily bars for serving: validation,
// metric enrichment, and batched storage.
package ingest

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/store"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/validation"
)

// Options contains configuration options for the ingest pipeline.
type Options struct {
	Workers    int
	ChunkSize  int
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultOptions returns the default pipeline options.
func DefaultOptions() Options {
	return Options{
		Workers:    4,
		ChunkSize:  100,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
}

// Pipeline runs bars through validate -> enrich -> store.
type Pipeline struct {
	store     store.Store
	validator *validation.BarValidator
	options   Options
}

// NewPipeline creates an ingest pipeline over the given store.
func NewPipeline(st store.Store, options Options) *Pipeline {
	if options.Workers < 1 {
		options.Workers = 1
	}
	if options.ChunkSize < 1 {
		options.ChunkSize = 100
	}
	return &Pipeline{
		store:     st,
		validator: validation.NewBarValidator(),
		options:   options,
	}
}

// Run processes one symbol's series and returns the recorded batch.
func (p *Pipeline) Run(ctx context.Context, symbol string, bars []models.DailyBar, source models.DataSource) (*models.IngestBatch, error) {
	batchID := fmt.Sprintf("bars-%s", uuid.New().String())
	log.Printf("Processing batch %s with %d bars for %s from %s", batchID, len(bars), symbol, source)

	valid := p.validator.ValidateSeries(bars)
	if len(valid) == 0 {
		return nil, fmt.Errorf("no valid bars for %s (%d rejected)", symbol, len(bars))
	}
	log.Printf("Validated %d/%d bars for batch %s", len(valid), len(bars), batchID)

	sort.Slice(valid, func(i, j int) bool { return valid[i].Date.Before(valid[j].Date) })
	valid = dedupeByDate(valid)
	valid = Enrich(valid)

	for i := range valid {
		valid[i].Symbol = symbol
		valid[i].Source = source
		valid[i].BatchID = batchID
	}

	if err := p.insertChunked(ctx, valid); err != nil {
		return nil, err
	}

	batch := &models.IngestBatch{
		ID:        batchID,
		Symbol:    symbol,
		Source:    source,
		BarCount:  len(valid),
		CreatedAt: time.Now(),
	}
	if err := p.store.InsertBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to record batch %s: %w", batchID, err)
	}

	log.Printf("Saved %d bars for %s (batch %s)", len(valid), symbol, batchID)
	return batch, nil
}

// insertChunked writes bars through a bounded worker pool, retrying each
// chunk with linear backoff.
func (p *Pipeline) insertChunked(ctx context.Context, bars []models.DailyBar) error {
	numChunks := (len(bars) + p.options.ChunkSize - 1) / p.options.ChunkSize

	// Buffer every chunk up front so the send loop below never blocks:
	// workers exit on their first failed chunk, and an unbuffered send
	// with no receivers left would wedge Run.
	chunks := make(chan []models.DailyBar, numChunks)
	errCh := make(chan error, p.options.Workers)

	var wg sync.WaitGroup
	for i := 0; i < p.options.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range chunks {
				if err := p.insertWithRetry(ctx, chunk); err != nil {
					select {
					case errCh <- err:
					default:
					}
					return
				}
			}
		}()
	}

	for start := 0; start < len(bars); start += p.options.ChunkSize {
		end := start + p.options.ChunkSize
		if end > len(bars) {
			end = len(bars)
		}
		chunks <- bars[start:end]
	}
	close(chunks)
	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

func (p *Pipeline) insertWithRetry(ctx context.Context, chunk []models.DailyBar) error {
	var lastErr error
	for retry := 0; retry < p.options.MaxRetries; retry++ {
		if _, lastErr = p.store.InsertBars(ctx, chunk); lastErr == nil {
			return nil
		}
		log.Printf("Error inserting chunk (retry %d/%d): %v", retry+1, p.options.MaxRetries, lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.options.RetryDelay * time.Duration(retry+1)):
		}
	}
	return fmt.Errorf("failed to insert chunk after %d retries: %w", p.options.MaxRetries, lastErr)
}

func dedupeByDate(bars []models.DailyBar) []models.DailyBar {
	out := bars[:0]
	for i := range bars {
		if len(out) > 0 && out[len(out)-1].Date.Equal(bars[i].Date) {
			out[len(out)-1] = bars[i]
			continue
		}
		out = append(out, bars[i])
	}
	return out
}
