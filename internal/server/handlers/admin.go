package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/shelfmap/internal/server/response"
	"github.com/agentstation/shelfmap/pkg/catalogs"
	"github.com/agentstation/shelfmap/pkg/logging"
	"github.com/agentstation/shelfmap/pkg/reconciler"
)

// ReloadResult is returned by a successful reload.
type ReloadResult struct {
	Books      int                   `json:"books"`
	Categories int                   `json:"categories"`
	Matched    int                   `json:"matched"`
	Sources    []catalogs.SourceInfo `json:"sources"`
	LoadedAt   time.Time             `json:"loaded_at"`
	Duration   string                `json:"duration"`
}

// Stats describes the running server and its catalog.
type Stats struct {
	Catalog struct {
		Books      int                         `json:"books"`
		Categories int                         `json:"categories"`
		Languages  int                         `json:"languages"`
		Years      int                         `json:"years"`
		Stats      reconciler.ResultStatistics `json:"stats"`
		Sources    []catalogs.SourceInfo       `json:"sources"`
		LoadedAt   *time.Time                  `json:"loaded_at,omitempty"`
	} `json:"catalog"`
	Cache struct {
		Items  int   `json:"items"`
		Hits   int64 `json:"hits"`
		Misses int64 `json:"misses"`
	} `json:"cache"`
	Realtime struct {
		WebSocketClients int `json:"websocket_clients"`
		SSEClients       int `json:"sse_clients"`
	} `json:"realtime"`
	Uptime string `json:"uptime"`
}

// HandleReload handles POST /api/v1/reload.
// @Summary Reload datasets
// @Description Fetch both datasets again and swap in the new catalog. On failure the previous catalog stays in place.
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=ReloadResult}
// @Failure 503 {object} response.Response{error=response.Error}
// @Router /api/v1/reload [post].
func (h *Handlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	client, err := h.app.Shelfmap()
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	ctx, cancel := h.loadTimeout(r.Context())
	defer cancel()

	start := time.Now()
	cat, err := client.Load(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("Reload failed")
		response.ErrorFromType(w, err)
		return
	}

	stats := cat.Stats()
	response.OK(w, ReloadResult{
		Books:      cat.Len(),
		Categories: cat.Categories().Len(),
		Matched:    stats.Matched,
		Sources:    cat.Sources(),
		LoadedAt:   cat.LoadedAt(),
		Duration:   time.Since(start).Round(time.Millisecond).String(),
	})
}

// HandleStats handles GET /api/v1/stats.
// @Summary Server statistics
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=Stats}
// @Router /api/v1/stats [get].
func (h *Handlers) HandleStats(w http.ResponseWriter, _ *http.Request) {
	var out Stats

	if client, err := h.app.Shelfmap(); err == nil {
		cat := client.Catalog()
		out.Catalog.Books = cat.Len()
		out.Catalog.Categories = cat.Categories().Len()
		out.Catalog.Languages = len(cat.Languages())
		out.Catalog.Years = len(cat.Years())
		out.Catalog.Stats = cat.Stats()
		out.Catalog.Sources = cat.Sources()
		if t := cat.LoadedAt(); cat.Loaded() {
			out.Catalog.LoadedAt = &t
		}
	}

	cs := h.cache.GetStats()
	out.Cache.Items, out.Cache.Hits, out.Cache.Misses = cs.ItemCount, cs.Hits, cs.Misses
	out.Realtime.WebSocketClients = h.wsHub.ClientCount()
	out.Realtime.SSEClients = h.sse.ClientCount()
	out.Uptime = time.Since(h.startTime).Round(time.Second).String()

	response.OK(w, out)
}
