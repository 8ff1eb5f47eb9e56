package handlers

import (
	"net/http"

	"github.com/agentstation/shelfmap/pkg/reconciler"
)

// Facets are the filter options offered to clients.
type Facets struct {
	Languages []string `json:"languages"`
	Years     []string `json:"years"`
	Total     int      `json:"total"`
}

// HandleCategories handles GET /api/v1/categories.
// @Summary List categories
// @Description Category labels with the ISBN keys grouped under each
// @Tags catalog
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/v1/categories [get].
func (h *Handlers) HandleCategories(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.catalog(w, r)
	if !ok {
		return
	}
	h.cached(w, cat, "categories", func() any {
		groups := cat.Categories().Groups()
		if groups == nil {
			groups = []reconciler.Group{}
		}
		return groups
	})
}

// HandleFacets handles GET /api/v1/facets.
// @Summary Filter options
// @Description Languages in Spanish collation order and years newest first
// @Tags catalog
// @Produce json
// @Success 200 {object} response.Response{data=Facets}
// @Router /api/v1/facets [get].
func (h *Handlers) HandleFacets(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.catalog(w, r)
	if !ok {
		return
	}
	h.cached(w, cat, "facets", func() any {
		return Facets{
			Languages: nonNil(cat.Languages()),
			Years:     nonNil(cat.Years()),
			Total:     cat.Len(),
		}
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
