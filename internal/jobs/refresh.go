// Package jobs contains the scheduled maintenance work: periodic
// re-fetching and re-ingestion of tracked symbols.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/ingest"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
)

// BarSource fetches a symbol's daily history; satisfied by the Yahoo
// client and by the sample generator wrapper in cmd/dataprep.
type BarSource interface {
	GetDailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]models.DailyBar, error)
}

// RefreshJob re-fetches and re-ingests a fixed set of symbols.
type RefreshJob struct {
	source   BarSource
	pipeline *ingest.Pipeline
	symbols  []string
	lookback time.Duration
	sourceID models.DataSource

	mu      sync.Mutex
	lastRun time.Time
}

// NewRefreshJob creates a refresh job covering the given symbols. The
// lookback controls how much history each refresh re-fetches. Symbols
// are trimmed and upper-cased so stored keys match handler lookups.
func NewRefreshJob(source BarSource, pipeline *ingest.Pipeline, symbols []string, lookback time.Duration, sourceID models.DataSource) *RefreshJob {
	normalized := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		normalized = append(normalized, symbol)
	}

	return &RefreshJob{
		source:   source,
		pipeline: pipeline,
		symbols:  normalized,
		lookback: lookback,
		sourceID: sourceID,
	}
}

// Name returns the job name.
func (j *RefreshJob) Name() string { return "bar_refresh" }

// LastRun returns when the job last completed successfully.
func (j *RefreshJob) LastRun() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.lastRun
}

// Execute refreshes every configured symbol, continuing past per-symbol
// failures and reporting them together at the end.
func (j *RefreshJob) Execute(ctx context.Context) error {
	end := time.Now()
	start := end.Add(-j.lookback)

	var failures []error
	for _, symbol := range j.symbols {
		bars, err := j.source.GetDailyHistory(ctx, symbol, start, end)
		if err != nil {
			log.Printf("Refresh fetch failed for %s: %v", symbol, err)
			failures = append(failures, fmt.Errorf("fetch %s: %w", symbol, err))
			continue
		}
		if _, err := j.pipeline.Run(ctx, symbol, bars, j.sourceID); err != nil {
			log.Printf("Refresh ingest failed for %s: %v", symbol, err)
			failures = append(failures, fmt.Errorf("ingest %s: %w", symbol, err))
		}
	}

	if len(failures) > 0 {
		return errors.Join(failures...)
	}

	j.mu.Lock()
	j.lastRun = time.Now()
	j.mu.Unlock()
	return nil
}

// Scheduler runs jobs on cron schedules.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

// NewScheduler creates a scheduler bound to the given context.
func NewScheduler(ctx context.Context) *Scheduler {
	return &Scheduler{cron: cron.New(), ctx: ctx}
}

// Schedule registers the refresh job under a cron spec.
func (s *Scheduler) Schedule(spec string, job *RefreshJob) error {
	_, err := s.cron.AddFunc(spec, func() {
		log.Printf("Running scheduled job %s", job.Name())
		if err := job.Execute(s.ctx); err != nil {
			log.Printf("Job %s failed: %v", job.Name(), err)
			return
		}
		log.Printf("Job %s completed", job.Name())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", job.Name(), err)
	}
	return nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
