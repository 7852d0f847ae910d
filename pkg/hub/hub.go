// Package hub provides a thread-safe websocket broadcast hub using the
// channel-based fan-out pattern. The belt monitor uses one hub per
// event feed (movement samples, belt transitions).
package hub

import (
	"encoding/json"
	"sync"

	"github.com/john-holland/matic-belt/internal/log"
)

// Hub maintains the set of active clients and broadcasts pre-encoded
// JSON payloads to them.
type Hub struct {
	// Name for logging
	name string

	// Registered clients
	clients map[*Client]bool

	// Inbound payloads to broadcast
	broadcast chan []byte

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for client count (read-only access from outside)
	mu sync.RWMutex
}

// New creates a hub for the named feed.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop. Call it in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("ws client connected", "feed", h.name, "clients", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("ws client disconnected", "feed", h.name, "clients", count)

		case payload := <-h.broadcast:
			// Full lock, not RLock: evicting a slow client mutates
			// the client set under ClientCount readers.
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Client's buffer is full: drop them rather
					// than stalling the feed.
					close(client.send)
					delete(h.clients, client)
					log.Warn("dropped slow ws client", "feed", h.name)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues a payload for all connected clients. Payloads are
// dropped, not blocked on, when the feed is saturated.
func (h *Hub) Broadcast(payload []byte) {
	select {
	case h.broadcast <- payload:
	default:
		log.Warn("broadcast channel full, dropping payload", "feed", h.name)
	}
}

// BroadcastJSON encodes v and broadcasts it.
func (h *Hub) BroadcastJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(data)
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
