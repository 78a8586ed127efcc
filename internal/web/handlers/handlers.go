package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/reelbase/reelbase/internal/database"
	"github.com/reelbase/reelbase/internal/stats"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	db    *database.DB
	stats *stats.Collector
}

// New creates a new Handlers instance
func New(db *database.DB, statsCollector *stats.Collector) *Handlers {
	return &Handlers{
		db:    db,
		stats: statsCollector,
	}
}

// writeJSON sends a JSON response with status 200
func (h *Handlers) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// jsonError sends a JSON error response
func (h *Handlers) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// jsonNotFound sends a JSON not-found response
func (h *Handlers) jsonNotFound(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
