// Package handlers implements the shelfmap HTTP API.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/shelfmap/cmd/application"
	"github.com/agentstation/shelfmap/internal/server/cache"
	"github.com/agentstation/shelfmap/internal/server/response"
	"github.com/agentstation/shelfmap/internal/server/sse"
	ws "github.com/agentstation/shelfmap/internal/server/websocket"
	"github.com/agentstation/shelfmap/pkg/catalogs"
	"github.com/agentstation/shelfmap/pkg/constants"
	"github.com/agentstation/shelfmap/pkg/logging"
)

// Handlers holds what the endpoints share.
type Handlers struct {
	app       application.Application
	cache     *cache.Cache
	wsHub     *ws.Hub
	sse       *sse.Broadcaster
	upgrader  *websocket.Upgrader
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates the handlers.
func New(
	app application.Application,
	cache *cache.Cache,
	wsHub *ws.Hub,
	sse *sse.Broadcaster,
	upgrader *websocket.Upgrader,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		app:       app,
		cache:     cache,
		wsHub:     wsHub,
		sse:       sse,
		upgrader:  upgrader,
		logger:    logger,
		startTime: time.Now(),
	}
}

// catalog returns the loaded catalog or writes the error response.
func (h *Handlers) catalog(w http.ResponseWriter, r *http.Request) (*catalogs.Catalog, bool) {
	cat, err := h.app.Catalog(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Warn().Err(err).Msg("Catalog unavailable")
		response.ErrorFromType(w, err)
		return nil, false
	}
	return cat, true
}

// cached serves key from the cache or builds and stores it. Keys include
// the catalog load time so a response never outlives its catalog.
func (h *Handlers) cached(w http.ResponseWriter, cat *catalogs.Catalog, key string, build func() any) {
	key = strconv.FormatInt(cat.LoadedAt().UnixNano(), 36) + "|" + key
	if v, ok := h.cache.Get(key); ok {
		w.Header().Set("X-Cache", "HIT")
		response.OK(w, v)
		return
	}
	v := build()
	h.cache.Set(key, v)
	w.Header().Set("X-Cache", "MISS")
	response.OK(w, v)
}

func (h *Handlers) loadTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, constants.LoadTimeout)
}
