package events

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Broker distributes events to subscribers from a single loop.
//
// Subscribe and Unsubscribe take effect before they return, so a subscriber
// registered before a Publish always sees that event, and one removed
// before a Publish never does.
type Broker struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	stopped     bool

	events chan Event
	seq    atomic.Uint64
	logger *zerolog.Logger
}

// NewBroker creates a broker. Subscribe and Publish may be called before Run.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{
		events: make(chan Event, 256),
		logger: logger,
	}
}

// Run dispatches queued events until ctx is cancelled, then closes every
// subscriber.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for _, sub := range b.subscribers {
				_ = sub.Close()
			}
			b.subscribers = nil
			b.stopped = true
			b.mu.Unlock()
			b.logger.Info().Msg("Event broker stopped")
			return

		case event := <-b.events:
			b.dispatch(event)
		}
	}
}

// dispatch sends in publish order while holding the read lock, so Send
// must not call back into Subscribe or Unsubscribe.
func (b *Broker) dispatch(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		if err := sub.Send(event); err != nil {
			b.logger.Warn().
				Err(err).
				Str("event_type", string(event.Type)).
				Msg("Failed to deliver event")
		}
	}
	b.logger.Debug().
		Str("event_type", string(event.Type)).
		Uint64("event_id", event.ID).
		Int("subscribers", len(b.subscribers)).
		Msg("Event published")
}

// Publish queues an event. It never blocks; when the queue is full the
// event is dropped and logged.
func (b *Broker) Publish(eventType EventType, data any) {
	event := Event{
		ID:        b.seq.Add(1),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
	select {
	case b.events <- event:
	default:
		b.logger.Warn().Str("event_type", string(eventType)).Msg("Event queue full, event dropped")
	}
}

// Subscribe registers sub. A broker that has already stopped closes sub
// straight away.
func (b *Broker) Subscribe(sub Subscriber) {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		_ = sub.Close()
		return
	}
	b.subscribers = append(b.subscribers, sub)
	n := len(b.subscribers)
	b.mu.Unlock()
	b.logger.Debug().Int("subscribers", n).Msg("Subscriber registered")
}

// Unsubscribe removes and closes sub. Unknown subscribers are ignored.
func (b *Broker) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subscribers {
		if s == sub {
			b.subscribers = append(b.subscribers[:i:i], b.subscribers[i+1:]...)
			_ = s.Close()
			b.logger.Debug().Int("subscribers", len(b.subscribers)).Msg("Subscriber removed")
			return
		}
	}
}

// SubscriberCount returns the number of registered subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
