package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/api"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/cache"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/fetch"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/ingest"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/jobs"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/store"
)

func main() {
	port := flag.Int("port", 8000, "API server port")
	redisAddr := flag.String("redis", "", "Redis address for response caching (empty disables caching)")
	cacheTTL := flag.Duration("cache-ttl", cache.DefaultTTL, "Cache TTL for computed payloads")
	refreshCron := flag.String("refresh-cron", "", "Cron spec for periodic symbol refresh (empty disables)")
	symbols := flag.String("symbols", "INFY.NS,TCS.NS,RELIANCE.NS,HDFCBANK.NS,ICICIBANK.NS", "Symbols covered by the refresh job")
	useSample := flag.Bool("sample", false, "Refresh from the sample generator instead of Yahoo Finance")
	flag.Parse()

	// Database settings come from DB_* environment variables.
	st, err := store.NewPostgresStore(store.DefaultConfig())
	if err != nil {
		log.Fatalf("Error connecting to store: %v", err)
	}
	defer st.Close()

	var c *cache.Cache
	if *redisAddr != "" {
		c, err = cache.New(*redisAddr, *cacheTTL)
		if err != nil {
			log.Printf("Warning: Redis unavailable at %s: %v", *redisAddr, err)
			log.Printf("Warning: Continuing without response caching")
			c = nil
		} else {
			defer c.Close()
		}
	}

	if *refreshCron != "" {
		var source jobs.BarSource = fetch.NewYahooClient(30 * time.Second)
		sourceID := models.YahooSource
		if *useSample {
			source = ingest.SampleSource{}
			sourceID = models.SampleSource
		}

		pipeline := ingest.NewPipeline(st, ingest.DefaultOptions())
		job := jobs.NewRefreshJob(source, pipeline,
			strings.Split(*symbols, ","), 60*24*time.Hour, sourceID)

		scheduler := jobs.NewScheduler(context.Background())
		if err := scheduler.Schedule(*refreshCron, job); err != nil {
			log.Fatalf("Error scheduling refresh: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Printf("Scheduled refresh %q for %s", *refreshCron, *symbols)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      api.NewServer(st, c).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on port %d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Error during server shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
