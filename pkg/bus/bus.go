// Package bus carries synthesized events from the trigger core to the host
// pipeline. The queue is fire-and-forget: enqueueing never blocks, and a
// full queue drops the event with an error the caller logs.
package bus

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/tinyland-inc/picotrigger/pkg/event"
)

// ErrBusClosed is returned when enqueueing onto a closed EventBus.
var ErrBusClosed = errors.New("event bus closed")

// ErrQueueFull is returned when the queue has no room. The event is dropped;
// there is no retry.
var ErrQueueFull = errors.New("event queue full")

const defaultQueueSize = 100

type EventBus struct {
	events chan event.Event
	done   chan struct{}
	closed atomic.Bool
}

// NewEventBus creates a bus with the given queue capacity. Sizes below one
// fall back to the default.
func NewEventBus(size int) *EventBus {
	if size < 1 {
		size = defaultQueueSize
	}
	return &EventBus{
		events: make(chan event.Event, size),
		done:   make(chan struct{}),
	}
}

// Enqueue adds a synthesized event to the queue without blocking.
func (b *EventBus) Enqueue(ev event.Event) error {
	if b.closed.Load() {
		return ErrBusClosed
	}
	select {
	case b.events <- ev:
		return nil
	case <-b.done:
		return ErrBusClosed
	default:
		return ErrQueueFull
	}
}

// Next blocks until an event is available, the bus closes, or the context
// is cancelled.
func (b *EventBus) Next(ctx context.Context) (event.Event, bool) {
	select {
	case ev, ok := <-b.events:
		return ev, ok
	case <-b.done:
		return nil, false
	case <-ctx.Done():
		return nil, false
	}
}

// Len reports the number of queued events.
func (b *EventBus) Len() int {
	return len(b.events)
}

func (b *EventBus) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.done)
	}
}
