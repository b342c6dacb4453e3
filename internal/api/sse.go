package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/teaonrocks/ODAT/internal/game"
	"github.com/teaonrocks/ODAT/internal/models"
	"github.com/teaonrocks/ODAT/internal/sse"
)

// handleSSE streams session and player updates for one session. Clients
// reconnect with the same playerId after a drop; the first events replay
// the current state so nothing is missed.
func (a *API) handleSSE(w http.ResponseWriter, r *http.Request) {
	session, err := a.sessionByCode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	playerID := r.URL.Query().Get("playerId")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable buffering in nginx/proxies
	flusher.Flush()

	clientChan := make(chan models.SSEMessage, game.SSEBufferSize)
	a.hub.AddClient(session.ID, clientChan, playerID)
	defer a.hub.RemoveClient(session.ID, clientChan)

	log.Printf("sse: client connected session=%s player=%s total=%d", session.Code, playerID, a.hub.ClientCount(session.ID))

	// Initial snapshot so a fresh or reconnecting client is current
	session.HostID = ""
	if data, err := json.Marshal(session); err == nil {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", sse.EventSessionUpdate, data)
	}
	if playerID != "" {
		if player, err := a.players.GetByID(playerID); err == nil {
			if data, err := json.Marshal(player); err == nil {
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", sse.EventPlayerUpdate, data)
			}
		}
	}
	flusher.Flush()

	reqCtx := r.Context()
	for {
		select {
		case <-reqCtx.Done():
			log.Printf("sse: client disconnected session=%s player=%s", session.Code, playerID)
			return
		case msg := <-clientChan:
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}
