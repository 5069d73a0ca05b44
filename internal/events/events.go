// Package events carries order lifecycle notifications to in-process
// subscribers (UI, receipt printing, analytics hooks) and, when configured,
// to a Kafka topic.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event types published by the order lifecycle.
const (
	TypeOrderPlaced  = "order.placed"
	TypeOrderDeleted = "order.deleted"
)

// Event is a lifecycle notification. It carries the order id only;
// subscribers fetch whatever detail they need.
type Event struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	OrderID int64     `json:"order_id"`
	At      time.Time `json:"at"`
}

// NewEvent builds an event with a fresh id and timestamp.
func NewEvent(eventType string, orderID int64) Event {
	return Event{
		ID:      uuid.NewString(),
		Type:    eventType,
		OrderID: orderID,
		At:      time.Now().UTC(),
	}
}

// Sink receives published events.
type Sink interface {
	Publish(ctx context.Context, e Event) error
}

// Dispatcher fans events out to subscriber channels and optional downstream
// sinks. Publishing never blocks: a subscriber that does not drain its
// channel misses events rather than stalling order processing.
type Dispatcher struct {
	mu    sync.RWMutex
	subs  []chan Event
	sinks []Sink
	log   *zap.Logger
}

// NewDispatcher creates a Dispatcher. Downstream sinks (e.g. Kafka) are
// optional.
func NewDispatcher(log *zap.Logger, sinks ...Sink) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{sinks: sinks, log: log}
}

// Subscribe returns a buffered channel receiving future events.
func (d *Dispatcher) Subscribe() <-chan Event {
	ch := make(chan Event, 16)
	d.mu.Lock()
	d.subs = append(d.subs, ch)
	d.mu.Unlock()
	return ch
}

// Publish delivers the event to every subscriber and sink. Sink failures are
// logged, not propagated: a broken analytics pipe must not fail an order.
func (d *Dispatcher) Publish(ctx context.Context, e Event) error {
	d.mu.RLock()
	subs := d.subs
	sinks := d.sinks
	d.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- e:
		default:
		}
	}
	for _, s := range sinks {
		if err := s.Publish(ctx, e); err != nil {
			d.log.Warn("event sink publish failed",
				zap.String("event_id", e.ID),
				zap.String("type", e.Type),
				zap.Int64("order_id", e.OrderID),
				zap.Error(err))
		}
	}
	return nil
}
