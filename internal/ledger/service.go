package ledger

import (
	"log"

	"github.com/google/uuid"
	"github.com/teaonrocks/ODAT/internal/game"
	"github.com/teaonrocks/ODAT/internal/models"
	"github.com/teaonrocks/ODAT/internal/store"
)

// Service owns all mutation of player state. Every operation is a single
// atomic read-modify-write against one player record; nothing outside this
// package (and the end-of-game settlement sweep) writes player fields.
type Service struct {
	store  *store.Store
	notify func(*models.Player)
}

// NewService creates the player ledger service
func NewService(s *store.Store) *Service {
	return &Service{
		store:  s,
		notify: func(*models.Player) {},
	}
}

// OnChange registers a callback invoked after every committed player
// mutation, with a snapshot of the new state.
func (s *Service) OnChange(fn func(*models.Player)) {
	if fn != nil {
		s.notify = fn
	}
}

// Join creates a player in the session with the given code.
func (s *Service) Join(code, name string) (*models.Player, error) {
	session, err := s.store.GetSessionByCode(code)
	if err != nil {
		return nil, err
	}

	player := &models.Player{
		ID:         uuid.New().String(),
		SessionID:  session.ID,
		Name:       name,
		Resources:  game.StartingResources,
		IsEmployed: true,
		Choices:    []models.Choice{},
	}
	if err := s.store.CreatePlayer(player); err != nil {
		return nil, err
	}
	log.Printf("player joined: session=%s player=%s name=%s", session.Code, player.ID, name)
	s.notify(player)
	return player, nil
}

// GetByID returns a player by id.
func (s *Service) GetByID(playerID string) (*models.Player, error) {
	return s.store.GetPlayer(playerID)
}

// GetForSession returns all players of a session.
func (s *Service) GetForSession(sessionID string) ([]*models.Player, error) {
	return s.store.PlayersForSession(sessionID)
}

// SubmitChoice records the player's decision for a day and applies its
// consequence. A day can only be decided once; a second submission fails
// with ErrDuplicateChoice, checked inside the same transaction as the
// write so retries and double-clicks cannot slip through. Choices are only
// accepted while the session is playing a day.
func (s *Service) SubmitChoice(playerID string, day int, choice string, consequence models.Consequence) (*models.Player, error) {
	player, err := s.store.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}
	session, err := s.store.GetSession(player.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase != models.PhaseInGame {
		return nil, game.ErrInvalidTransition
	}

	updated, err := s.store.UpdatePlayer(playerID, func(p *models.Player) error {
		if _, exists := p.ChoiceForDay(day); exists {
			return game.ErrDuplicateChoice
		}
		game.ApplyConsequence(p, consequence)
		p.Choices = append(p.Choices, models.Choice{Day: day, Choice: choice, Consequence: consequence})
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify(updated)
	return updated, nil
}

// AssignToGroup sets or clears the player's cohort. A non-empty group id
// must belong to the player's own session.
func (s *Service) AssignToGroup(playerID, groupID string) (*models.Player, error) {
	player, err := s.store.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}
	if groupID != "" {
		session, err := s.store.GetSession(player.SessionID)
		if err != nil {
			return nil, err
		}
		if _, ok := session.GroupByID(groupID); !ok {
			return nil, game.ErrGroupNotFound
		}
	}

	updated, err := s.store.UpdatePlayer(playerID, func(p *models.Player) error {
		p.GroupID = groupID
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify(updated)
	return updated, nil
}
