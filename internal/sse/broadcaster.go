package sse

import (
	"log"
	"maps"
	"os"
	"sync"
	"time"

	"github.com/teaonrocks/ODAT/internal/game"
	"github.com/teaonrocks/ODAT/internal/models"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

// Hub fans mutation events out to the subscribed clients of each session.
// This is the reactive-read surface the presentation layer listens on.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[chan models.SSEMessage]string // sessionID -> channel -> playerID
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[chan models.SSEMessage]string),
	}
}

// AddClient subscribes a client channel to a session's updates.
func (h *Hub) AddClient(sessionID string, client chan models.SSEMessage, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[sessionID] == nil {
		h.clients[sessionID] = make(map[chan models.SSEMessage]string)
	}
	// Warn if the same player has multiple SSE connections
	dup := 0
	for _, pid := range h.clients[sessionID] {
		if pid == playerID {
			dup++
		}
	}
	if dup > 0 {
		log.Printf("WARN: player %s opened %d additional SSE connection(s)", playerID, dup)
	}
	h.clients[sessionID][client] = playerID
}

// RemoveClient unsubscribes a client channel from a session.
func (h *Hub) RemoveClient(sessionID string, client chan models.SSEMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[sessionID], client)
	if len(h.clients[sessionID]) == 0 {
		delete(h.clients, sessionID)
	}
}

// ClientCount returns the number of clients subscribed to a session.
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// Broadcast sends a message to every client subscribed to the session.
// Sends happen without the lock and give up after a short timeout so one
// stalled client cannot block the rest.
func (h *Hub) Broadcast(sessionID, event, data string) {
	h.mu.RLock()
	clients := maps.Clone(h.clients[sessionID])
	h.mu.RUnlock()

	if debug {
		log.Printf("broadcast: session=%s event=%s to %d clients", sessionID, event, len(clients))
	}

	msg := models.SSEMessage{Event: event, Data: data}
	for client := range clients {
		select {
		case client <- msg:
		case <-time.After(time.Duration(game.SSETimeoutSeconds) * time.Second):
			if debug {
				log.Printf("broadcast: timeout sending to client")
			}
		}
	}
}
