package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/engine"
)

// respondWithJSON writes a JSON payload with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"Error marshaling JSON"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError writes the structured error body the frontend consumes:
// {"detail": "..."}. No internal stack information is ever included.
func respondWithError(w http.ResponseWriter, code int, detail string) {
	respondWithJSON(w, code, map[string]string{"detail": detail})
}

// respondWithEngineError maps engine errors onto HTTP status codes.
func respondWithEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrUnknownSymbol):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrSameSymbol):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrInvalidInput):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, engine.ErrInsufficientData):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
