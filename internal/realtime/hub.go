package realtime

import (
	"sync"

	"go.uber.org/zap"

	"github.com/kessal001/prenotazione-sale/internal/domain"
)

// Subscription is one listener on the change feed. Cancel is
// idempotent and closes the channel.
type Subscription struct {
	C      <-chan domain.ChangeEvent
	cancel func()
}

func (s *Subscription) Cancel() { s.cancel() }

// Hub fans change events out to the calendar sessions of this
// instance. Events for all rooms pass through unfiltered; the session
// views filter by room.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan domain.ChangeEvent
	nextID int
	closed bool
	log    *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{subs: make(map[int]chan domain.ChangeEvent), log: log}
}

// Subscribe registers a listener with the given channel buffer.
func (h *Hub) Subscribe(buffer int) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan domain.ChangeEvent, buffer)
	if h.closed {
		close(ch)
		return &Subscription{C: ch, cancel: func() {}}
	}
	h.subs[id] = ch
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
			h.mu.Unlock()
		})
	}
	return &Subscription{C: ch, cancel: cancel}
}

// Publish delivers the event to every subscriber without blocking.
// A subscriber whose buffer is full misses the event; it will catch up
// on its next full reload.
func (h *Hub) Publish(ev domain.ChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.log.Warn("subscriber too slow, event dropped", zap.Int("sub", id), zap.String("eventType", ev.EventType))
		}
	}
}

// Close shuts every subscription down.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
