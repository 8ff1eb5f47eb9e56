package handlers

import (
	"net/http"

	"github.com/agentstation/shelfmap/internal/server/response"
)

// HandleHealth handles GET /api/v1/health.
// @Summary Health check
// @Description Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/v1/health [get].
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "shelfmap-api",
		"version": h.app.Version(),
	})
}

// HandleReady handles GET /api/v1/ready.
// @Summary Readiness check
// @Description Ready once a catalog has been loaded
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 503 {object} response.Response{error=response.Error}
// @Router /api/v1/ready [get].
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	client, err := h.app.Shelfmap()
	if err != nil {
		response.ServiceUnavailable(w, "Catalog client not available")
		return
	}
	cat := client.Catalog()
	if !cat.Loaded() {
		response.ServiceUnavailable(w, "Catalog not loaded yet")
		return
	}
	response.OK(w, map[string]any{
		"status":    "ready",
		"books":     cat.Len(),
		"loaded_at": cat.LoadedAt(),
	})
}
