package httpapi

import "net/http"

// HandleHealth reports whether the movie store is reachable
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.movies.Ping(r.Context()); err != nil {
		h.logger.Warn().Err(err).Str("backend", h.backend).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: statusUnhealthy})
		return
	}

	h.logger.Debug().Str("backend", h.backend).Msg("health check")

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  statusHealthy,
		Backend: h.backend,
	})
}
