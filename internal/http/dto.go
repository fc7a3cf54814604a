// Package httpapi provides HTTP handlers and data transfer objects for the movie API.
package httpapi

// Error messages returned to callers
const (
	msgInvalidID     = "Invalid movie ID format"
	msgNotFound      = "Movie not found"
	msgInternalError = "Internal server error"
)

// Health status values
const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error string `json:"error"`
}
