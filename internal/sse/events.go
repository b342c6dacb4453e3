package sse

// SSE event type constants
const (
	EventSessionUpdate = "session-update"
	EventPlayerUpdate  = "player-update"
)
