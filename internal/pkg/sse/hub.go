package sse

import (
	"sync"
	"time"
)

// AdminChannel receives events addressed to every administrator.
const AdminChannel = "admin"

const (
	EventAttendancePunched   = "attendance.punched"
	EventCorrectionSubmitted = "correction.submitted"
	EventCorrectionReviewed  = "correction.reviewed"
	EventDashboardSummary    = "dashboard.summary"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	Channel    string      `json:"channel"`
	Name       string      `json:"event"`
	Data       interface{} `json:"data"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Publisher is the narrow view services depend on.
type Publisher interface {
	Publish(channel string, event Event)
}

// Hub manages SSE subscribers and event broadcasting
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber on a channel and returns the event channel and cleanup function
func (h *Hub) Subscribe(channel string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 16)

	if h.subscribers[channel] == nil {
		h.subscribers[channel] = make(map[chan Event]struct{})
	}
	h.subscribers[channel][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[channel], ch)
			close(ch)
			if len(h.subscribers[channel]) == 0 {
				delete(h.subscribers, channel)
			}
		})
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a channel
func (h *Hub) Publish(channel string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.Channel = channel
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	for ch := range h.subscribers[channel] {
		select {
		case ch <- event:
		default:
			// Slow subscriber, drop rather than block the publisher
		}
	}
}

// SubscriberCount returns the number of active subscribers on a channel
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[channel])
}
