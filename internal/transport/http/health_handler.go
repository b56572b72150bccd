package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sheetviz/pkg/contracts"
)

// HealthHandler serves liveness and version endpoints.
type HealthHandler struct {
	startTime time.Time
}

// NewHealthHandler creates a health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startTime: time.Now()}
}

// Routes returns the health endpoints, mounted under /api.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", h.handleHealth)
	r.Get("/version", h.handleVersion)
	return r
}

func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	renderData(w, r, map[string]interface{}{
		"status": "healthy",
		"uptime": time.Since(h.startTime).String(),
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) handleVersion(w http.ResponseWriter, r *http.Request) {
	renderData(w, r, contracts.GetBuildInfo())
}
