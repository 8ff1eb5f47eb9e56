package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/agentstation/shelfmap/internal/server/events"
	ws "github.com/agentstation/shelfmap/internal/server/websocket"
)

// HandleWebSocket handles GET /api/v1/updates/ws.
// @Summary WebSocket updates
// @Description Catalog events as JSON frames
// @Tags updates
// @Success 101 "Switching Protocols"
// @Router /api/v1/updates/ws [get].
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := r.RemoteAddr + "-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	hello := ws.Message{
		Type:      string(events.ClientConnected),
		Timestamp: time.Now().UTC(),
		Data:      map[string]any{"client_id": id},
	}
	if err := h.wsHub.Serve(h.upgrader, w, r, id, hello); err != nil {
		h.logger.Warn().Err(err).Str("remote_addr", r.RemoteAddr).Msg("WebSocket upgrade failed")
	}
}

// HandleSSE handles GET /api/v1/updates/stream.
// @Summary SSE updates
// @Description Catalog events as a Server-Sent Events stream
// @Tags updates
// @Produce text/event-stream
// @Success 200 "Event stream"
// @Router /api/v1/updates/stream [get].
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.sse.ServeHTTP(w, r)
}
