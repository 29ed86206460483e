package client

import (
	"sync"
	"time"
)

// EventType identifies a notification pushed to a running client.
type EventType int

const (
	EventShutdown EventType = iota // Server is stopping
)

// Event is a notification delivered to a client between frames.
type Event struct {
	Type EventType
}

// Handle is a client's registration with a Registry.
type Handle struct {
	ID       int
	Username string
	Events   chan Event
}

// Registry tracks the clients of a server so they can be told to leave.
// Each client still runs its own independent game.
type Registry struct {
	mu       sync.RWMutex
	clients  map[int]*Handle
	nextID   int
	stopping bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[int]*Handle)}
}

// Register adds a client. Clients joining after Shutdown has started are told
// to leave straight away.
func (r *Registry) Register(username string) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := &Handle{
		ID:       r.nextID,
		Username: username,
		Events:   make(chan Event, 4),
	}
	r.nextID++
	r.clients[h.ID] = h
	if r.stopping {
		h.Events <- Event{Type: EventShutdown}
	}
	return h
}

// Unregister removes a client.
func (r *Registry) Unregister(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

// Len returns the number of registered clients.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Shutdown notifies every client and waits until they have all unregistered
// or the timeout passes. It returns the number of clients still connected.
func (r *Registry) Shutdown(timeout time.Duration) int {
	r.mu.Lock()
	r.stopping = true
	for _, h := range r.clients {
		select {
		case h.Events <- Event{Type: EventShutdown}:
		default:
		}
	}
	r.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if remaining := r.Len(); remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			return r.Len()
		case <-ticker.C:
		}
	}
}
