package handlers

import (
	"net/http"

	"github.com/agentstation/shelfmap/internal/embedded/openapi"
	"github.com/agentstation/shelfmap/internal/server/response"
)

// HandleOpenAPIJSON handles GET /api/v1/openapi.json.
// @Summary OpenAPI document (JSON)
// @Tags meta
// @Produce json
// @Success 200 {object} object
// @Router /api/v1/openapi.json [get].
func (h *Handlers) HandleOpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	doc, err := openapi.SpecJSON()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to convert OpenAPI document")
		response.InternalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(doc)
}

// HandleOpenAPIYAML handles GET /api/v1/openapi.yaml.
// @Summary OpenAPI document (YAML)
// @Tags meta
// @Produce application/x-yaml
// @Success 200 {string} string
// @Router /api/v1/openapi.yaml [get].
func (h *Handlers) HandleOpenAPIYAML(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(openapi.SpecYAML)
}
