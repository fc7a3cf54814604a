package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dsjohal14/mflix/internal/scope/db"
	"github.com/rs/zerolog"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	movies  db.MovieFinder
	backend string
	logger  zerolog.Logger
}

// NewHandler creates a new HTTP handler. backend names the store in health output.
func NewHandler(movies db.MovieFinder, backend string, logger zerolog.Logger) *Handler {
	return &Handler{
		movies:  movies,
		backend: backend,
		logger:  logger,
	}
}

// Helper functions used across all handlers

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeRawJSON writes an already encoded JSON body with the given status code
func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// writeError writes an error response with the given status code
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
