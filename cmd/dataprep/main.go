// Command dataprep fetches historical stock data, computes the derived
// metrics, and loads it into the store. If Yahoo Finance cannot be
// reached, a deterministic sample series is generated instead so the
// dashboard always has something to show.
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/fetch"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/ingest"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/store"
)

const fetchRetries = 3

func main() {
	symbols := flag.String("symbols", "INFY.NS,TCS.NS,RELIANCE.NS,HDFCBANK.NS,ICICIBANK.NS", "Comma-separated symbols to fetch")
	lookback := flag.Duration("lookback", 2*365*24*time.Hour, "How much history to fetch")
	sampleOnly := flag.Bool("sample", false, "Skip Yahoo Finance and generate sample data")
	clearFirst := flag.Bool("clear", false, "Delete existing bars for each symbol first")
	flag.Parse()

	st, err := store.NewPostgresStore(store.DefaultConfig())
	if err != nil {
		log.Fatalf("Error connecting to store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	pipeline := ingest.NewPipeline(st, ingest.DefaultOptions())
	yahoo := fetch.NewYahooClient(30 * time.Second)

	end := time.Now()
	start := end.Add(-*lookback)

	success := 0
	list := strings.Split(*symbols, ",")
	for _, symbol := range list {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}

		if *clearFirst {
			if err := st.DeleteSymbol(ctx, symbol); err != nil {
				log.Printf("Error clearing %s: %v", symbol, err)
				continue
			}
		}

		bars, source := fetchOrGenerate(ctx, yahoo, symbol, start, end, *sampleOnly)
		batch, err := pipeline.Run(ctx, symbol, bars, source)
		if err != nil {
			log.Printf("Error ingesting %s: %v", symbol, err)
			continue
		}
		log.Printf("Saved %d bars for %s from %s", batch.BarCount, symbol, source)
		success++

		// Small delay between requests to stay polite to the provider.
		time.Sleep(time.Second)
	}

	log.Printf("Data preparation complete: %d/%d symbols processed", success, len(list))
}

// fetchOrGenerate fetches history from Yahoo Finance with retries,
// falling back to the sample generator when the provider fails.
func fetchOrGenerate(ctx context.Context, yahoo *fetch.YahooClient, symbol string, start, end time.Time, sampleOnly bool) ([]models.DailyBar, models.DataSource) {
	if !sampleOnly {
		for attempt := 1; attempt <= fetchRetries; attempt++ {
			log.Printf("Fetching %s (attempt %d/%d)...", symbol, attempt, fetchRetries)
			bars, err := yahoo.GetDailyHistory(ctx, symbol, start, end)
			if err == nil {
				return bars, models.YahooSource
			}
			log.Printf("Error fetching %s: %v", symbol, err)
			if attempt < fetchRetries {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
			}
		}
		log.Printf("Yahoo Finance failed for %s, generating sample data...", symbol)
	}

	bars, _ := ingest.SampleSource{}.GetDailyHistory(ctx, symbol, start, end)
	return bars, models.SampleSource
}
