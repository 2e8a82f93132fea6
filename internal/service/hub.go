package service

import (
	"encoding/json"
	"sync"
	"time"
)

// EventName identifies a realtime event on the wire
type EventName string

const (
	// Mutation events, broadcast to every connected session
	EventCreated EventName = "eventCreated"
	EventUpdated EventName = "eventUpdated"
	EventDeleted EventName = "eventDeleted"
	CommentAdded EventName = "commentAdded"

	// System events
	EventHeartbeat EventName = "heartbeat"
)

// Event represents a server-sent event
type Event struct {
	Name EventName   `json:"name"`
	Data interface{} `json:"data"`
}

// Format returns the SSE formatted string
func (e *Event) Format() string {
	data, _ := json.Marshal(e.Data)
	return "event: " + string(e.Name) + "\ndata: " + string(data) + "\n\n"
}

// Subscriber represents a connected SSE client
type Subscriber struct {
	ID     string
	Events chan *Event
	Done   chan struct{}
}

// Hub manages SSE subscriptions and fans mutation events out to every
// connected session. Delivery is at-most-once: a subscriber whose buffer
// is full misses the event, and there is no replay.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscriber
	heartbeat   *time.Ticker
	done        chan struct{}
}

// NewHub creates a new hub
func NewHub() *Hub {
	hub := &Hub{
		subscribers: make(map[string]*Subscriber),
		done:        make(chan struct{}),
	}
	// Start heartbeat
	hub.heartbeat = time.NewTicker(30 * time.Second)
	go hub.sendHeartbeats()
	return hub
}

// Subscribe registers a new subscriber
func (h *Hub) Subscribe(subscriberID string) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscriber{
		ID:     subscriberID,
		Events: make(chan *Event, 100), // Buffer to prevent blocking
		Done:   make(chan struct{}),
	}
	h.subscribers[subscriberID] = sub

	return sub
}

// Unsubscribe removes a subscriber. Unsubscribing an unknown or already
// removed id is a no-op.
func (h *Hub) Unsubscribe(subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subscribers[subscriberID]; ok {
		close(sub.Done)
		close(sub.Events)
		delete(h.subscribers, subscriberID)
	}
}

// Broadcast sends an event to every subscriber with a non-blocking send
func (h *Hub) Broadcast(name EventName, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event := &Event{Name: name, Data: data}
	for _, sub := range h.subscribers {
		select {
		case sub.Events <- event:
			// Event sent successfully
		default:
			// Buffer full, skip this subscriber
		}
	}
}

// sendHeartbeats sends periodic heartbeats to all subscribers
func (h *Hub) sendHeartbeats() {
	for {
		select {
		case <-h.heartbeat.C:
			h.Broadcast(EventHeartbeat, map[string]string{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		case <-h.done:
			return
		}
	}
}

// Close stops the hub and tears down all subscribers
func (h *Hub) Close() {
	close(h.done)
	h.heartbeat.Stop()

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, sub := range h.subscribers {
		close(sub.Done)
		close(sub.Events)
		delete(h.subscribers, id)
	}
}

// SubscriberCount returns the number of connected subscribers
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
