package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

type failingSink struct{ calls int }

func (s *failingSink) Publish(ctx context.Context, e Event) error {
	s.calls++
	return errors.New("broker unreachable")
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	d := NewDispatcher(nil)
	a := d.Subscribe()
	b := d.Subscribe()

	e := NewEvent(TypeOrderPlaced, 42)
	if err := d.Publish(context.Background(), e); err != nil {
		t.Fatalf("publish: %v", err)
	}

	for _, ch := range []<-chan Event{a, b} {
		select {
		case got := <-ch:
			if got.ID != e.ID || got.OrderID != 42 {
				t.Fatalf("got %+v, want %+v", got, e)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber did not receive the event")
		}
	}
}

func TestPublishNeverBlocksOnFullSubscriber(t *testing.T) {
	d := NewDispatcher(nil)
	d.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			_ = d.Publish(context.Background(), NewEvent(TypeOrderDeleted, int64(i)))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("publish blocked on a slow subscriber")
	}
}

func TestSinkFailureIsSwallowed(t *testing.T) {
	sink := &failingSink{}
	d := NewDispatcher(nil, sink)

	if err := d.Publish(context.Background(), NewEvent(TypeOrderPlaced, 1)); err != nil {
		t.Fatalf("sink errors must not propagate, got %v", err)
	}
	if sink.calls != 1 {
		t.Fatalf("sink calls = %d, want 1", sink.calls)
	}
}

func TestNewEventFillsIdentity(t *testing.T) {
	e := NewEvent(TypeOrderPlaced, 9)
	if e.ID == "" {
		t.Fatalf("event id must be set")
	}
	if e.At.IsZero() {
		t.Fatalf("event timestamp must be set")
	}
}
