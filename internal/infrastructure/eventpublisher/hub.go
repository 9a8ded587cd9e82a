package eventpublisher

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/usecase"
)

// Hub implements usecase.ChangeNotifier. It fans committed changes out to
// in-process subscribers and forwards them to other notifiers, typically the
// Redis publisher.
//
// Delivery to a subscriber never blocks: when its buffer is full the event is
// dropped. Subscribers treat events as refresh signals, so a full buffer
// already guarantees another refresh.
type Hub struct {
	origin  string
	forward []usecase.ChangeNotifier

	mu          sync.RWMutex
	subscribers map[int]chan domain.ChangeEvent
	next        int
}

// NewHub creates a Hub with a fresh origin id.
func NewHub(forward ...usecase.ChangeNotifier) *Hub {
	return &Hub{
		origin:      ulid.Make().String(),
		forward:     forward,
		subscribers: make(map[int]chan domain.ChangeEvent),
	}
}

// Origin returns the id stamped on events emitted by this process.
func (h *Hub) Origin() string {
	return h.origin
}

// Subscribe registers a subscriber and returns its channel and a cancel
// function that closes it.
func (h *Hub) Subscribe(buffer int) (<-chan domain.ChangeEvent, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan domain.ChangeEvent, buffer)

	h.mu.Lock()
	id := h.next
	h.next++
	h.subscribers[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Notify stamps event with this process's origin, delivers it locally and
// forwards it.
func (h *Hub) Notify(ctx context.Context, event domain.ChangeEvent) {
	if event.Origin == "" {
		event.Origin = h.origin
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	h.Deliver(event)
	for _, f := range h.forward {
		f.Notify(ctx, event)
	}
}

// Deliver hands event to local subscribers without forwarding it.
func (h *Hub) Deliver(event domain.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// DeliverRemote is Deliver for events from a shared channel; it drops events
// that originated here.
func (h *Hub) DeliverRemote(event domain.ChangeEvent) {
	if event.Origin == h.origin {
		return
	}
	h.Deliver(event)
}
