// Package store provides the time series store: ordered daily bars per
// symbol, loaded by the ingest pipeline and read by the API handlers.
package store

import (
	"context"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
)

// Store is the read/write interface over per-symbol daily bar series.
// History returns bars in ascending date order; a limit <= 0 means the
// full series.
type Store interface {
	Symbols(ctx context.Context) ([]string, error)
	History(ctx context.Context, symbol string, limit int) ([]models.DailyBar, error)
	InsertBars(ctx context.Context, bars []models.DailyBar) (int, error)
	InsertBatch(ctx context.Context, batch *models.IngestBatch) error
	DeleteSymbol(ctx context.Context, symbol string) error
	Close() error
}
