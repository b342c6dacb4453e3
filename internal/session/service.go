package session

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/teaonrocks/ODAT/internal/game"
	"github.com/teaonrocks/ODAT/internal/models"
	"github.com/teaonrocks/ODAT/internal/scenario"
	"github.com/teaonrocks/ODAT/internal/store"
)

// Service owns the per-session phase machine. Every mutation re-reads the
// session inside a store transaction, validates the requested transition
// against the current phase, and commits atomically. Host-only operations
// require the host id issued at creation.
type Service struct {
	store      *store.Store
	catalog    *scenario.Catalog
	slideCount int
	timers     *timerSet
	notify     func(*models.Session)
}

// NewService creates the session state machine service. slideCount is the
// number of instruction slides the presentation layer will show.
func NewService(s *store.Store, catalog *scenario.Catalog, slideCount int) *Service {
	svc := &Service{
		store:      s,
		catalog:    catalog,
		slideCount: slideCount,
		timers:     newTimerSet(),
		notify:     func(*models.Session) {},
	}
	return svc
}

// OnChange registers a callback invoked after every committed session
// mutation, with a snapshot of the new state.
func (s *Service) OnChange(fn func(*models.Session)) {
	if fn != nil {
		s.notify = fn
	}
}

// Create starts a new session in LOBBY with a fresh join code. Code
// uniqueness is retried a bounded number of times; a collision after the
// last attempt surfaces as an error.
func (s *Service) Create() (*models.Session, error) {
	var session *models.Session
	for attempt := 0; attempt < game.SessionCodeAttempts; attempt++ {
		session = &models.Session{
			ID:                 uuid.New().String(),
			Code:               game.UniqueSessionCode(s.store.CodeExists),
			HostID:             uuid.New().String(),
			Phase:              models.PhaseLobby,
			CurrentSubPage:     -1,
			TransitionDuration: game.DefaultTransitionDuration,
			Groups:             []models.Group{},
		}
		err := s.store.CreateSession(session)
		if err == nil {
			log.Printf("session created: code=%s id=%s", session.Code, session.ID)
			return session, nil
		}
		if !errors.Is(err, store.ErrCodeTaken) {
			return nil, err
		}
	}
	return nil, store.ErrCodeTaken
}

// GetByCode returns the session with the given join code.
func (s *Service) GetByCode(code string) (*models.Session, error) {
	return s.store.GetSessionByCode(code)
}

// Get returns the session with the given id.
func (s *Service) Get(id string) (*models.Session, error) {
	return s.store.GetSession(id)
}

// StartInstructions moves the session from LOBBY to the instruction slides.
func (s *Service) StartInstructions(sessionID, hostID string) (*models.Session, error) {
	return s.mutate(sessionID, hostID, func(session *models.Session) error {
		if session.Phase != models.PhaseLobby {
			return game.ErrInvalidTransition
		}
		session.Phase = models.PhaseInstructions
		session.InstructionSlide = 0
		return nil
	})
}

// NextInstruction advances to the next instruction slide.
func (s *Service) NextInstruction(sessionID, hostID string) (*models.Session, error) {
	return s.mutate(sessionID, hostID, func(session *models.Session) error {
		if session.Phase != models.PhaseInstructions {
			return game.ErrInvalidTransition
		}
		if session.InstructionSlide < s.slideCount-1 {
			session.InstructionSlide++
		}
		return nil
	})
}

// PrevInstruction steps back one instruction slide, stopping at the first.
func (s *Service) PrevInstruction(sessionID, hostID string) (*models.Session, error) {
	return s.mutate(sessionID, hostID, func(session *models.Session) error {
		if session.Phase != models.PhaseInstructions {
			return game.ErrInvalidTransition
		}
		if session.InstructionSlide > 0 {
			session.InstructionSlide--
		}
		return nil
	})
}

// StartGame leaves the instruction slides for day 1. It requires the host
// to have reached the last slide.
func (s *Service) StartGame(sessionID, hostID string) (*models.Session, error) {
	session, err := s.mutate(sessionID, hostID, func(session *models.Session) error {
		if session.Phase != models.PhaseInstructions {
			return game.ErrInvalidTransition
		}
		if session.InstructionSlide < s.slideCount-1 {
			return game.ErrInvalidTransition
		}
		session.Phase = models.PhaseDayTransition
		session.CurrentDay = 1
		session.CurrentSubPage = -1
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.scheduleTransition(session)
	return session, nil
}

// ShowDayScenario moves from the day-transition screen into the playable
// day. The host may call it to skip the transition early; the deferred
// timer calls the same path. Whichever fires second finds the phase has
// already moved and gets ErrInvalidTransition.
func (s *Service) ShowDayScenario(sessionID, hostID string) (*models.Session, error) {
	session, err := s.mutate(sessionID, hostID, func(session *models.Session) error {
		if session.Phase != models.PhaseDayTransition {
			return game.ErrInvalidTransition
		}
		session.Phase = models.PhaseInGame
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.timers.cancel(sessionID)
	return session, nil
}

// ShowDayResult moves the day from play into its result view.
func (s *Service) ShowDayResult(sessionID, hostID string) (*models.Session, error) {
	return s.mutate(sessionID, hostID, func(session *models.Session) error {
		if session.Phase != models.PhaseInGame {
			return game.ErrInvalidTransition
		}
		session.Phase = models.PhaseDayResult
		session.CurrentSubPage = 0
		return nil
	})
}

// NextSubPage advances to the next sub-page of the current day's result,
// while more remain.
func (s *Service) NextSubPage(sessionID, hostID string) (*models.Session, error) {
	return s.mutate(sessionID, hostID, func(session *models.Session) error {
		if session.Phase != models.PhaseDayResult {
			return game.ErrInvalidTransition
		}
		if session.CurrentSubPage+1 >= s.catalog.SubPageCount(session.CurrentDay) {
			return game.ErrInvalidTransition
		}
		session.CurrentSubPage++
		return nil
	})
}

// AdvanceDay moves the session to the next day's transition screen, or to
// FINISHED when day 14 is done. Finishing first runs the loan settlement
// sweep over every player of the session.
func (s *Service) AdvanceDay(sessionID, hostID string) (*models.Session, error) {
	current, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if current.HostID != hostID {
		return nil, game.ErrNotHost
	}
	if current.Phase != models.PhaseInGame && current.Phase != models.PhaseDayResult {
		return nil, game.ErrInvalidTransition
	}

	if current.CurrentDay+1 > game.FinalDay {
		// Settle outstanding loans before the phase flips. Each player's
		// settlement is its own transaction and only fires while a
		// balance remains, so a crashed or raced sweep re-runs safely.
		if err := s.settleLoans(sessionID); err != nil {
			return nil, err
		}
		session, err := s.mutate(sessionID, hostID, func(session *models.Session) error {
			if session.Phase != models.PhaseInGame && session.Phase != models.PhaseDayResult {
				return game.ErrInvalidTransition
			}
			session.Phase = models.PhaseFinished
			session.CurrentSubPage = -1
			return nil
		})
		if err != nil {
			return nil, err
		}
		s.timers.cancel(sessionID)
		log.Printf("session finished: id=%s", sessionID)
		return session, nil
	}

	session, err := s.mutate(sessionID, hostID, func(session *models.Session) error {
		if session.Phase != models.PhaseInGame && session.Phase != models.PhaseDayResult {
			return game.ErrInvalidTransition
		}
		session.Phase = models.PhaseDayTransition
		session.CurrentDay++
		session.CurrentSubPage = -1
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.scheduleTransition(session)
	return session, nil
}

// SetTransitionDuration changes how long the day-transition screen shows,
// within the allowed range.
func (s *Service) SetTransitionDuration(sessionID, hostID string, ms int) (*models.Session, error) {
	if ms < game.MinTransitionDuration || ms > game.MaxTransitionDuration {
		return nil, game.ErrInvalidDuration
	}
	return s.mutate(sessionID, hostID, func(session *models.Session) error {
		session.TransitionDuration = ms
		return nil
	})
}

// SetHideHits toggles whether player hit counters are visible.
func (s *Service) SetHideHits(sessionID, hostID string, hide bool) (*models.Session, error) {
	return s.mutate(sessionID, hostID, func(session *models.Session) error {
		session.HideHits = hide
		return nil
	})
}

// settleLoans deducts every unpaid loan with interest, player by player.
func (s *Service) settleLoans(sessionID string) error {
	ids, err := s.store.PlayerIDsForSession(sessionID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		_, err := s.store.UpdatePlayer(id, func(p *models.Player) error {
			if p.LoanBalance <= 0 {
				return nil
			}
			p.Resources -= game.LoanInterest(p.LoanBalance)
			p.LoanBalance = 0
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// mutate applies fn to the session atomically after the host check, then
// notifies subscribers.
func (s *Service) mutate(sessionID, hostID string, fn func(*models.Session) error) (*models.Session, error) {
	session, err := s.store.UpdateSession(sessionID, func(session *models.Session) error {
		if session.HostID != hostID {
			return game.ErrNotHost
		}
		return fn(session)
	})
	if err != nil {
		return nil, err
	}
	s.notify(session)
	return session, nil
}
