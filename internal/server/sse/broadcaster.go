// Package sse streams catalog events as Server-Sent Events.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event is one SSE frame.
type Event struct {
	Event string `json:"event,omitempty"`
	ID    string `json:"id,omitempty"`
	Data  any    `json:"data"`
}

// Broadcaster manages SSE connections.
type Broadcaster struct {
	clients    map[chan Event]struct{}
	newClients chan chan Event
	closed     chan chan Event
	events     chan Event
	done       chan struct{}
	mu         sync.RWMutex
	logger     *zerolog.Logger
}

// NewBroadcaster creates a broadcaster. Clients may connect before Run.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		clients:    make(map[chan Event]struct{}),
		newClients: make(chan chan Event, 16),
		closed:     make(chan chan Event, 16),
		events:     make(chan Event, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the broadcaster until ctx is cancelled. Open streams end when
// it returns.
func (b *Broadcaster) Run(ctx context.Context) {
	defer close(b.done)
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for c := range b.clients {
				close(c)
				delete(b.clients, c)
			}
			b.mu.Unlock()
			b.logger.Info().Msg("SSE broadcaster stopped")
			return

		case c := <-b.newClients:
			b.mu.Lock()
			b.clients[c] = struct{}{}
			n := len(b.clients)
			b.mu.Unlock()
			b.logger.Info().Int("clients", n).Msg("SSE client connected")

		case c := <-b.closed:
			b.mu.Lock()
			if _, ok := b.clients[c]; ok {
				delete(b.clients, c)
				close(c)
			}
			n := len(b.clients)
			b.mu.Unlock()
			b.logger.Info().Int("clients", n).Msg("SSE client disconnected")

		case e := <-b.events:
			b.mu.RLock()
			for c := range b.clients {
				select {
				case c <- e:
				default:
					b.logger.Warn().Str("event", e.Event).Msg("SSE client buffer full, event skipped")
				}
			}
			b.mu.RUnlock()
		}
	}
}

// Broadcast queues e for every client.
func (b *Broadcaster) Broadcast(e Event) {
	select {
	case b.events <- e:
	default:
		b.logger.Warn().Str("event", e.Event).Msg("SSE queue full, event dropped")
	}
}

// ClientCount returns the number of open streams.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// ServeHTTP holds the connection open and writes events until the client
// goes away or the broadcaster stops.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// The server's WriteTimeout would otherwise cut the stream.
	_ = rc.SetWriteDeadline(time.Time{})

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	client := make(chan Event, 64)
	b.newClients <- client
	defer func() {
		select {
		case b.closed <- client:
		case <-b.done:
		}
	}()

	b.write(w, rc, Event{
		Event: "client.connected",
		Data:  map[string]any{"timestamp": time.Now().UTC()},
	})

	for {
		select {
		case e, ok := <-client:
			if !ok {
				return
			}
			if err := b.write(w, rc, e); err != nil {
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}

func (b *Broadcaster) write(w http.ResponseWriter, rc *http.ResponseController, e Event) error {
	data, err := json.Marshal(e.Data)
	if err != nil {
		b.logger.Error().Err(err).Str("event", e.Event).Msg("Failed to encode SSE event")
		return nil
	}
	if e.Event != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", e.Event); err != nil {
			return err
		}
	}
	if e.ID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", e.ID); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return rc.Flush()
}
