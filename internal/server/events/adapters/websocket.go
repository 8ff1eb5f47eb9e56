// Package adapters connects the event broker to the realtime transports.
package adapters

import (
	"github.com/agentstation/shelfmap/internal/server/events"
	ws "github.com/agentstation/shelfmap/internal/server/websocket"
)

// WebSocketSubscriber forwards events to a WebSocket hub.
type WebSocketSubscriber struct {
	hub *ws.Hub
}

// NewWebSocketSubscriber creates a subscriber for hub.
func NewWebSocketSubscriber(hub *ws.Hub) *WebSocketSubscriber {
	return &WebSocketSubscriber{hub: hub}
}

// Send implements events.Subscriber.
func (w *WebSocketSubscriber) Send(e events.Event) error {
	w.hub.Broadcast(Message(e))
	return nil
}

// Close is a no-op; the hub owns its connections.
func (w *WebSocketSubscriber) Close() error { return nil }

// Message converts an event to a WebSocket frame.
func Message(e events.Event) ws.Message {
	return ws.Message{
		ID:        e.ID,
		Type:      string(e.Type),
		Timestamp: e.Timestamp,
		Data:      e.Data,
	}
}
