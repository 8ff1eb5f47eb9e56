package events

// Subscriber receives every event the broker publishes.
type Subscriber interface {
	// Send delivers one event. It must not block for long.
	Send(Event) error

	// Close releases the subscriber. The broker calls it on unsubscribe
	// and on shutdown.
	Close() error
}
