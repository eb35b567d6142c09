// Package ops serves liveness and readiness endpoints on a separate port.
package ops

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"agenthub/internal/infra"
)

// HealthSource reports the last database probe
type HealthSource interface {
	Status() infra.HealthStatus
}

type healthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Database  string    `json:"database"`
	CheckedAt time.Time `json:"checkedAt"`
}

// NewRouter creates the ops router
func NewRouter(health HealthSource) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/health", handleHealth(health))
	r.Get("/ready", handleReady(health))

	return r
}

func handleHealth(health HealthSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := health.Status()
		writeJSON(w, http.StatusOK, healthResponse{
			Status:    "healthy",
			Service:   "agenthub-api",
			Database:  status.Database,
			CheckedAt: status.CheckedAt,
		})
	}
}

func handleReady(health HealthSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := health.Status()
		code := http.StatusOK
		state := "ready"
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
			state = "unavailable"
		}
		writeJSON(w, code, healthResponse{
			Status:    state,
			Service:   "agenthub-api",
			Database:  status.Database,
			CheckedAt: status.CheckedAt,
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
