// Package realtime fans post lifecycle events out to connected clients.
// Delivery is best-effort: no replay, no persistence, and a subscriber
// connecting after an event misses it permanently.
package realtime

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/feedstream/feed-api/internal/api/metrics"
	"github.com/feedstream/feed-api/internal/core/ports"
)

// subscriberBuffer bounds the per-subscriber queue. A subscriber that
// falls this far behind starts losing frames instead of blocking Publish.
const subscriberBuffer = 16

// Subscriber is one connected client's view of the event stream.
type Subscriber struct {
	ch chan ports.Event
}

// Events returns the subscriber's receive channel. It is closed on
// Unsubscribe.
func (s *Subscriber) Events() <-chan ports.Event {
	return s.ch
}

// Hub is the process-wide fan-out channel for post events.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
	log  zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		subs: make(map[*Subscriber]struct{}),
		log:  log,
	}
}

func (h *Hub) Subscribe() *Subscriber {
	s := &Subscriber{ch: make(chan ports.Event, subscriberBuffer)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	metrics.RealtimeSubscribers.Inc()
	return s
}

func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	_, ok := h.subs[s]
	if ok {
		delete(h.subs, s)
		close(s.ch)
	}
	h.mu.Unlock()
	if ok {
		metrics.RealtimeSubscribers.Dec()
	}
}

// Publish delivers the event to every current subscriber without blocking.
// A full subscriber buffer drops the frame; the originating domain call is
// never failed or delayed by delivery.
func (h *Hub) Publish(event ports.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	metrics.RealtimeEventsTotal.WithLabelValues(event.Action).Inc()
	for s := range h.subs {
		select {
		case s.ch <- event:
		default:
			metrics.RealtimeDroppedTotal.Inc()
			h.log.Warn().Str("action", event.Action).Str("post_id", event.PostID).Msg("subscriber buffer full, frame dropped")
		}
	}
}
