package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/engine"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
)

const (
	// defaultDataDays is the window served by /data when no days
	// parameter is given.
	defaultDataDays = 30
	// maxCompareDays bounds the /compare window.
	maxCompareDays = 90
)

// rootHandler returns API metadata and the endpoint listing.
func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Stock Data Intelligence API",
		"version": Version,
		"endpoints": map[string]string{
			"/companies":        "GET - List all available companies",
			"/data/{symbol}":    "GET - Get recent daily stock data with metrics",
			"/summary/{symbol}": "GET - Get 52-week summary",
			"/compare":          "GET - Compare two stocks",
		},
	})
}

// healthHandler returns API health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// companiesHandler lists all symbols present in the store. An empty store
// is not an error: the frontend renders an empty picker.
func (s *Server) companiesHandler(w http.ResponseWriter, r *http.Request) {
	symbols, err := s.store.Symbols(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list companies")
		return
	}
	if symbols == nil {
		symbols = []string{}
	}
	respondWithJSON(w, http.StatusOK, map[string][]string{"companies": symbols})
}

// dataHandler returns the last N days of daily bars for a symbol with the
// trailing 7-day moving average. The moving average is recomputed from the
// store on every request; extra history is fetched beyond the requested
// window so early points still have 7 samples behind them when the series
// allows it.
func (s *Server) dataHandler(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])

	days, err := queryInt(r, "days", defaultDataDays)
	if err != nil || days < 1 {
		respondWithError(w, http.StatusUnprocessableEntity, "days must be a positive integer")
		return
	}

	bars, err := s.store.History(r.Context(), symbol, days+engine.DefaultMAWindow-1)
	if err != nil {
		respondWithEngineError(w, err)
		return
	}

	ma, err := engine.MovingAverage(bars, engine.DefaultMAWindow)
	if err != nil {
		respondWithEngineError(w, err)
		return
	}

	start := len(bars) - days
	if start < 0 {
		start = 0
	}
	points := make([]models.SeriesPoint, 0, len(bars)-start)
	for i := start; i < len(bars); i++ {
		b := bars[i]
		points = append(points, models.SeriesPoint{
			Date:        b.DateString(),
			Open:        b.Open,
			High:        b.High,
			Low:         b.Low,
			Close:       b.Close,
			Volume:      b.Volume,
			DailyReturn: b.DailyReturn,
			MA7:         ma[i],
			Volatility:  b.Volatility,
			Symbol:      b.Symbol,
		})
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"symbol": symbol,
		"data":   points,
	})
}

// summaryHandler returns the 52-week high, low, and average close for a
// symbol. Results are cached briefly since the underlying series only
// changes on ingest.
func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])
	cacheKey := "stockintel:summary:" + symbol

	if payload, ok := s.cache.Get(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
		return
	}

	bars, err := s.store.History(r.Context(), symbol, engine.SummaryWindow)
	if err != nil {
		respondWithEngineError(w, err)
		return
	}

	stats, err := engine.Summary(bars, engine.SummaryWindow)
	if err != nil {
		respondWithEngineError(w, err)
		return
	}
	stats.Symbol = symbol

	if payload, err := json.Marshal(stats); err == nil {
		s.cache.Set(r.Context(), cacheKey, payload)
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// compareHandler returns two symbols' close series over a shared window,
// each rebased to 100 at the first aligned date. The normalized values are
// keyed by "<SYMBOL>_normalized", so the response shape depends on the
// requested symbols.
func (s *Server) compareHandler(w http.ResponseWriter, r *http.Request) {
	symbol1 := strings.ToUpper(r.URL.Query().Get("symbol1"))
	symbol2 := strings.ToUpper(r.URL.Query().Get("symbol2"))
	if symbol1 == "" || symbol2 == "" {
		respondWithError(w, http.StatusBadRequest, "symbol1 and symbol2 are required")
		return
	}
	if symbol1 == symbol2 {
		respondWithError(w, http.StatusBadRequest, "cannot compare a symbol with itself")
		return
	}

	days, err := queryInt(r, "days", defaultDataDays)
	if err != nil || days < 1 || days > maxCompareDays {
		respondWithError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("days must be between 1 and %d", maxCompareDays))
		return
	}

	cacheKey := fmt.Sprintf("stockintel:compare:%s:%s:%d", symbol1, symbol2, days)
	if payload, ok := s.cache.Get(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
		return
	}

	series1, err := s.store.History(r.Context(), symbol1, days)
	if err != nil {
		respondWithEngineError(w, err)
		return
	}
	series2, err := s.store.History(r.Context(), symbol2, days)
	if err != nil {
		respondWithEngineError(w, err)
		return
	}

	cmp, err := engine.Compare(symbol1, series1, symbol2, series2, days)
	if err != nil {
		respondWithEngineError(w, err)
		return
	}

	rows := make([]map[string]interface{}, len(cmp.Rows))
	for i, row := range cmp.Rows {
		rows[i] = map[string]interface{}{
			"date":                  row.Date,
			symbol1 + "_normalized": round2(row.Normalized[0]),
			symbol2 + "_normalized": round2(row.Normalized[1]),
		}
	}

	response := map[string]interface{}{
		"symbol1": symbol1,
		"symbol2": symbol2,
		"days":    days,
		"data":    rows,
	}
	if payload, err := json.Marshal(response); err == nil {
		s.cache.Set(r.Context(), cacheKey, payload)
	}
	respondWithJSON(w, http.StatusOK, response)
}

// round2 rounds to two decimals for presentation. Rounding happens only
// here at the edge; the engine works in full double precision.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
