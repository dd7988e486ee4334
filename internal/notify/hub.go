package notify

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Hub is the in-process broadcast set behind the SSE stream. One hub serves
// the whole process; subscribers are not segmented by establishment, clients
// filter events on their side. Delivery is best-effort: no ordering across
// subscribers, no queuing beyond each subscriber's small buffer, no replay
// for clients that connect after an event.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscriber]struct{}
}

// Subscriber is one open stream. Messages arrive pre-framed on C.
type Subscriber struct {
	C chan []byte
}

const subscriberBuffer = 16

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscriber]struct{})}
}

func (h *Hub) Register() *Subscriber {
	s := &Subscriber{C: make(chan []byte, subscriberBuffer)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Unregister removes a subscriber and closes its channel. Safe to call more
// than once and for subscribers that were never registered.
func (h *Hub) Unregister(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.C)
	}
}

// Broadcast frames the payload as an SSE event and hands it to every current
// subscriber. A subscriber whose buffer is full just misses the event; it
// recovers state by re-querying the REST endpoints.
func (h *Hub) Broadcast(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Warn().Err(err).Str("event", event).Msg("broadcast payload not serializable, dropped")
		return
	}
	msg := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event, data))

	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		select {
		case s.C <- msg:
		default:
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// hub is the process-wide instance used by Emit and the stream handler.
var hub = NewHub()

func Default() *Hub { return hub }
