package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/employees-api/internal/model/employee"
)

// Type names the kind of change carried by an Event.
type Type string

const (
	TypeCreated Type = "created"
	TypeUpdated Type = "updated"
	TypeDeleted Type = "deleted"
)

// Event describes one committed change to the employee collection.
type Event struct {
	ID        string            `json:"id"`
	Type      Type              `json:"type"`
	Employee  employee.Employee `json:"employee"`
	CreatedAt time.Time         `json:"createdAt"`
}

const defaultBuffer = 16

// Hub fans out employee change events to live subscribers.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]chan Event
	buffer int
	closed bool
}

// NewHub creates a hub whose subscriber channels hold up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		subs:   make(map[string]chan Event),
		buffer: buffer,
	}
}

// Subscribe registers a new listener. The returned cancel func must be called
// once the listener goes away; it closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	id := uuid.NewString()
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		// Close may already have released the channel.
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Close ends every subscription and rejects new ones. Listeners see their
// channel closed, which lets streaming handlers return during shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

// Publish stamps and delivers an event. Subscribers whose buffer is full miss
// the event rather than stalling the publishing request.
func (h *Hub) Publish(eventType Type, item employee.Employee) Event {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Employee:  item,
		CreatedAt: time.Now().UTC(),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return event
}

// Subscribers returns the number of active listeners.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
