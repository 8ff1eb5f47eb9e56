// Package events fans catalog changes out to the realtime transports.
//
// The client's hooks publish into a Broker, which forwards every event to
// each registered Subscriber. The WebSocket hub and the SSE broadcaster are
// wired in through the adapters package.
package events

import "time"

// EventType names a catalog event.
type EventType string

// Catalog events.
const (
	CatalogLoaded     EventType = "catalog.loaded"
	CatalogLoadFailed EventType = "catalog.load_failed"
	BookAdded         EventType = "book.added"
	BookUpdated       EventType = "book.updated"
	BookRemoved       EventType = "book.removed"

	// ClientConnected is sent to a transport client right after it connects.
	ClientConnected EventType = "client.connected"
)

// Event is one published change.
type Event struct {
	ID        uint64    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// LoadSummary is the payload of a CatalogLoaded event.
type LoadSummary struct {
	Books      int       `json:"books"`
	Categories int       `json:"categories"`
	Previous   int       `json:"previous"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// LoadFailure is the payload of a CatalogLoadFailed event.
type LoadFailure struct {
	Error string `json:"error"`
}
