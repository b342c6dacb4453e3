package models

// Group is a named cohort players can assign themselves to while the
// session is still in the lobby.
type Group struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Session represents one shared game instance, driven through its phases
// by the host while players act against their own ledgers.
type Session struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	HostID string `json:"hostId"`
	Phase  Phase  `json:"phase"`

	// InstructionSlide is the 0-based slide index shown during
	// INSTRUCTIONS. CurrentDay is the simulation day (1..14) once the
	// game has started. The two are independent fields so a read never
	// has to know the phase to interpret them.
	InstructionSlide int `json:"instructionSlide"`
	CurrentDay       int `json:"currentDay"`

	// CurrentSubPage indexes into the active day's sub-page sequence
	// during DAY_RESULT. -1 means no sub-page is active.
	CurrentSubPage int `json:"currentSubPage"`

	// TransitionDuration is how long DAY_TRANSITION is displayed before
	// auto-advancing, in milliseconds.
	TransitionDuration int `json:"transitionDuration"`

	HideHits bool    `json:"hideHits"`
	Groups   []Group `json:"groups"`
}

// SSEMessage represents a message sent via Server-Sent Events
type SSEMessage struct {
	Event string // Event type (e.g., "session-update", "player-update")
	Data  string // JSON payload
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	c := *s
	c.Groups = make([]Group, len(s.Groups))
	copy(c.Groups, s.Groups)
	return &c
}

// GroupByID returns the group with the given id, if present.
func (s *Session) GroupByID(id string) (Group, bool) {
	for _, g := range s.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}
