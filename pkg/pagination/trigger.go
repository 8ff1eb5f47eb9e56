package pagination

import (
	"context"
	"sync"
)

// Source is the pull side of a pager as seen by a Trigger.
type Source[T any] interface {
	HasMore() bool
	NextPage() []T
}

// Trigger connects a stream of visibility signals to a pager. Each signal
// pulls one page when more are available and hands it to the sink. Only one
// observation is active at a time: Attach replaces the previous one.
type Trigger[T any] struct {
	mu          sync.Mutex
	lock        sync.Locker
	cancel      context.CancelFunc
	done        chan struct{}
	attachments int
}

// NewTrigger returns a detached trigger. When lock is non-nil it is held
// while a page is pulled and delivered, so the sink must not call back into
// whatever lock protects.
func NewTrigger[T any](lock sync.Locker) *Trigger[T] {
	return &Trigger[T]{lock: lock}
}

// Attach starts observing signals. Any earlier observation is stopped before
// Attach returns. The observation ends when ctx is canceled, signals is
// closed, or Detach is called.
func (t *Trigger[T]) Attach(ctx context.Context, signals <-chan struct{}, src Source[T], sink func([]T)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.detachLocked()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.cancel = cancel
	t.done = done
	t.attachments++

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
				if ctx.Err() != nil {
					return
				}
				t.fire(src, sink)
			}
		}
	}()
}

func (t *Trigger[T]) fire(src Source[T], sink func([]T)) {
	if t.lock != nil {
		t.lock.Lock()
		defer t.lock.Unlock()
	}
	if src.HasMore() {
		sink(src.NextPage())
	}
}

// Detach stops the current observation and waits for it to exit. It is a
// no-op when nothing is attached. It must not be called from the sink.
func (t *Trigger[T]) Detach() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.detachLocked()
}

func (t *Trigger[T]) detachLocked() {
	if t.cancel == nil {
		return
	}
	t.cancel()
	<-t.done
	t.cancel, t.done = nil, nil
}

// Attached reports whether an observation is active.
func (t *Trigger[T]) Attached() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

// Attachments returns how many times Attach has been called.
func (t *Trigger[T]) Attachments() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attachments
}
