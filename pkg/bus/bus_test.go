package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tinyland-inc/picotrigger/pkg/config"
	"github.com/tinyland-inc/picotrigger/pkg/event"
	"github.com/tinyland-inc/picotrigger/pkg/message"
	"github.com/tinyland-inc/picotrigger/pkg/origin"
)

func testEvent(t *testing.T) event.Event {
	t.Helper()
	env := message.Build("/work", origin.Parse("webchat:FriendMessage:console"), "42", "alice", nil, nil)
	return event.Build(config.TypeWebChat, env, nil, event.Identity{SenderID: "42", SenderName: "alice"})
}

func TestEnqueueAndNext(t *testing.T) {
	b := NewEventBus(4)
	defer b.Close()

	want := testEvent(t)
	if err := b.Enqueue(want); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, ok := b.Next(ctx)
	if !ok {
		t.Fatal("Next returned no event")
	}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEnqueueFullQueueDoesNotBlock(t *testing.T) {
	b := NewEventBus(1)
	defer b.Close()

	if err := b.Enqueue(testEvent(t)); err != nil {
		t.Fatalf("first Enqueue: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- b.Enqueue(testEvent(t)) }()

	select {
	case err := <-done:
		if !errors.Is(err, ErrQueueFull) {
			t.Errorf("got %v, want ErrQueueFull", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	if b.Len() != 1 {
		t.Errorf("Len: got %d, want 1", b.Len())
	}
}

func TestEnqueueClosedBus(t *testing.T) {
	b := NewEventBus(4)
	b.Close()
	b.Close() // idempotent

	if err := b.Enqueue(testEvent(t)); !errors.Is(err, ErrBusClosed) {
		t.Errorf("got %v, want ErrBusClosed", err)
	}
}

func TestNextCancelledContext(t *testing.T) {
	b := NewEventBus(4)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := b.Next(ctx); ok {
		t.Error("Next on cancelled context should report no event")
	}
}

func TestZeroSizeFallsBackToDefault(t *testing.T) {
	b := NewEventBus(0)
	defer b.Close()
	if cap(b.events) != defaultQueueSize {
		t.Errorf("capacity: got %d, want %d", cap(b.events), defaultQueueSize)
	}
}
