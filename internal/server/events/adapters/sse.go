package adapters

import (
	"strconv"

	"github.com/agentstation/shelfmap/internal/server/events"
	"github.com/agentstation/shelfmap/internal/server/sse"
)

// SSESubscriber forwards events to an SSE broadcaster.
type SSESubscriber struct {
	broadcaster *sse.Broadcaster
}

// NewSSESubscriber creates a subscriber for b.
func NewSSESubscriber(b *sse.Broadcaster) *SSESubscriber {
	return &SSESubscriber{broadcaster: b}
}

// Send implements events.Subscriber.
func (s *SSESubscriber) Send(e events.Event) error {
	s.broadcaster.Broadcast(Frame(e))
	return nil
}

// Close is a no-op; the broadcaster owns its streams.
func (s *SSESubscriber) Close() error { return nil }

// Frame converts an event to an SSE frame. The event ID doubles as the
// SSE id so clients can tell whether they missed anything.
func Frame(e events.Event) sse.Event {
	return sse.Event{
		Event: string(e.Type),
		ID:    strconv.FormatUint(e.ID, 10),
		Data:  e.Data,
	}
}
