package handlers

//go:generate mockgen -source=health.go -destination=health_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-user-posts/internal/logger"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse reports service health
// swagger:model HealthResponse
type HealthResponse struct {
	// default: ok
	Status string `json:"status"`
}

// NewHealthHandler returns an HTTP handler reporting database reachability.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} handlers.HealthResponse
// @Failure 503 {object} handlers.HealthResponse
// @Router /health [get]
func NewHealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			logger.Log.Warnw("health check failed", "err", err)
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// RegisterHealthHandler registers the health route
func RegisterHealthHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/health", h)
}
