package models

// Phase represents the current state of a session
type Phase string

const (
	PhaseLobby         Phase = "LOBBY"
	PhaseInstructions  Phase = "INSTRUCTIONS"
	PhaseDayTransition Phase = "DAY_TRANSITION"
	PhaseInGame        Phase = "IN_GAME"
	PhaseDayResult     Phase = "DAY_RESULT"
	PhaseFinished      Phase = "FINISHED"
)
