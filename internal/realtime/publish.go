package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"simplecache/internal/cache"
)

// DefaultPublishBuffer is how many events may wait for delivery before new
// ones are dropped.
const DefaultPublishBuffer = 256

// Publisher forwards cache events to a hub. Publish only enqueues, so a
// slow subscriber never holds up a cache write; Run does the broadcasting.
type Publisher struct {
	hub    *Hub
	events chan cache.Event
}

// NewPublisher returns a publisher for h. A non-positive buffer uses
// DefaultPublishBuffer.
func NewPublisher(h *Hub, buffer int) *Publisher {
	if buffer <= 0 {
		buffer = DefaultPublishBuffer
	}
	return &Publisher{hub: h, events: make(chan cache.Event, buffer)}
}

// Publish queues e for broadcasting and reports whether it was accepted.
// It never blocks: when the queue is full the event is dropped. Use it as
// the cache listener.
func (p *Publisher) Publish(e cache.Event) bool {
	select {
	case p.events <- e:
		return true
	default:
		slog.Warn("dropping cache event, publisher queue is full", "op", e.Op, "type", e.TypeTag)
		return false
	}
}

// Run broadcasts queued events until ctx is done. Each event goes out on
// the topic of its type tag; vacuum events have no tag and reach only
// AllTopics subscribers.
func (p *Publisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-p.events:
			p.broadcast(e)
		}
	}
}

func (p *Publisher) broadcast(e cache.Event) {
	msg, err := json.Marshal(e)
	if err != nil {
		slog.Warn("failed to encode cache event", "op", e.Op, "error", err)
		return
	}
	topic := e.TypeTag
	if topic == "" {
		topic = AllTopics
	}
	p.hub.Broadcast(topic, msg)
}
