// Package api exposes the stock dashboard's HTTP surface: company
// listing, per-symbol daily data with moving averages, 52-week summaries,
// and normalized two-symbol comparisons.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/cache"
	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/store"
)

// Version reported by the root endpoint.
const Version = "1.0"

// Server holds the API routes and their collaborators. The cache may be
// nil, in which case every request recomputes from the store.
type Server struct {
	store  store.Store
	cache  *cache.Cache
	router *mux.Router
}

// NewServer creates an API server over the given store.
func NewServer(st store.Store, c *cache.Cache) *Server {
	s := &Server{
		store:  st,
		cache:  c,
		router: mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.rootHandler).Methods("GET")
	s.router.HandleFunc("/health", s.healthHandler).Methods("GET")
	s.router.HandleFunc("/companies", s.companiesHandler).Methods("GET")
	s.router.HandleFunc("/data/{symbol}", s.dataHandler).Methods("GET")
	s.router.HandleFunc("/summary/{symbol}", s.summaryHandler).Methods("GET")
	s.router.HandleFunc("/compare", s.compareHandler).Methods("GET")
}

// Handler returns the full middleware-wrapped handler: request logging
// inside a permissive CORS layer, since the frontend is served from a
// different origin.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(requestLogger(s.router))
}
