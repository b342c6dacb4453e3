package session

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/teaonrocks/ODAT/internal/game"
	"github.com/teaonrocks/ODAT/internal/models"
)

// timerSet tracks the pending day-transition timer per session. A session
// has at most one; scheduling replaces any earlier timer.
type timerSet struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newTimerSet() *timerSet {
	return &timerSet{timers: make(map[string]*time.Timer)}
}

func (t *timerSet) schedule(sessionID string, d time.Duration, fire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.timers[sessionID]; ok {
		prev.Stop()
	}
	t.timers[sessionID] = time.AfterFunc(d, fire)
}

func (t *timerSet) cancel(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.timers[sessionID]; ok {
		prev.Stop()
		delete(t.timers, sessionID)
	}
}

// scheduleTransition arms the auto-advance out of DAY_TRANSITION. The timer
// lives server-side so the transition fires even if every client drops.
func (s *Service) scheduleTransition(session *models.Session) {
	d := time.Duration(session.TransitionDuration) * time.Millisecond
	id := session.ID
	s.timers.schedule(id, d, func() { s.fireDayScenario(id) })
}

// fireDayScenario is the timer path into IN_GAME. It re-reads the session
// inside the transaction and only applies if the phase is still
// DAY_TRANSITION; a host skip that won the race makes this a no-op.
func (s *Service) fireDayScenario(sessionID string) {
	session, err := s.store.UpdateSession(sessionID, func(session *models.Session) error {
		if session.Phase != models.PhaseDayTransition {
			return game.ErrInvalidTransition
		}
		session.Phase = models.PhaseInGame
		return nil
	})
	if err != nil {
		if !errors.Is(err, game.ErrInvalidTransition) {
			log.Printf("transition timer: session=%s: %v", sessionID, err)
		}
		return
	}
	s.notify(session)
}
