package notify

import (
	"context"
	"sync"
	"time"
)

// Hub tracks alert connections per user. A user may hold several open
// connections (multiple tabs, devices); an alert is pushed to all of them.
type Hub struct {
	mu           sync.RWMutex
	connections  map[string]map[*Connection]struct{}
	pingInterval time.Duration
}

// NewHub builds connection hub.
func NewHub(pingInterval time.Duration) *Hub {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &Hub{
		connections:  make(map[string]map[*Connection]struct{}),
		pingInterval: pingInterval,
	}
}

// Add registers new connection.
func (h *Hub) Add(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.connections[conn.UserID()]
	if !ok {
		set = make(map[*Connection]struct{})
		h.connections[conn.UserID()] = set
	}
	set[conn] = struct{}{}
}

// Remove drops a connection.
func (h *Hub) Remove(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.connections[conn.UserID()]
	if !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(h.connections, conn.UserID())
	}
}

// Push delivers a payload to every open connection of one user and reports
// how many connections received it.
func (h *Hub) Push(userID string, payload []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.connections[userID] {
		conn.Send(payload)
	}
	return len(h.connections[userID])
}

// Start begins ping loop to keep connections active.
func (h *Hub) Start(ctx context.Context) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.mu.RLock()
			for _, set := range h.connections {
				for conn := range set {
					_ = conn.Ping()
				}
			}
			h.mu.RUnlock()
		}
	}
}
