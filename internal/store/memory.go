package store

import (
	"errors"
	"sync"

	"github.com/teaonrocks/ODAT/internal/game"
	"github.com/teaonrocks/ODAT/internal/models"
)

// ErrCodeTaken is returned when a session code collides with a live session.
var ErrCodeTaken = errors.New("session code already in use")

// Store holds sessions, players, and scenarios with per-document atomic
// read-modify-write semantics. Reads hand out deep copies; all mutation
// goes through the Update* callbacks, which run under the store lock so a
// read-check-write sequence commits as one transaction.
type Store struct {
	mu             sync.RWMutex
	sessions       map[string]*models.Session // sessionID -> session
	sessionsByCode map[string]string          // code -> sessionID
	players        map[string]*models.Player  // playerID -> player
	sessionPlayers map[string][]string        // sessionID -> ordered playerIDs
	scenarios      map[int]*models.Scenario   // day -> scenario
}

// New creates an empty store
func New() *Store {
	return &Store{
		sessions:       make(map[string]*models.Session),
		sessionsByCode: make(map[string]string),
		players:        make(map[string]*models.Player),
		sessionPlayers: make(map[string][]string),
		scenarios:      make(map[int]*models.Scenario),
	}
}

// CreateSession inserts a new session. Fails if the code is already taken.
func (s *Store) CreateSession(session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.sessionsByCode[session.Code]; taken {
		return ErrCodeTaken
	}
	s.sessions[session.ID] = session.Clone()
	s.sessionsByCode[session.Code] = session.ID
	return nil
}

// CodeExists checks if a session code is already in use
func (s *Store) CodeExists(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.sessionsByCode[code]
	return exists
}

// GetSession retrieves a session by id
func (s *Store) GetSession(id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[id]
	if !exists {
		return nil, game.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// GetSessionByCode retrieves a session by its join code
func (s *Store) GetSessionByCode(code string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, exists := s.sessionsByCode[code]
	if !exists {
		return nil, game.ErrSessionNotFound
	}
	return s.sessions[id].Clone(), nil
}

// UpdateSession atomically applies fn to the session. fn works on a copy
// under the store lock; if it returns an error nothing is kept.
func (s *Store) UpdateSession(id string, fn func(*models.Session) error) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, exists := s.sessions[id]
	if !exists {
		return nil, game.ErrSessionNotFound
	}
	work := session.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	s.sessions[id] = work
	return work.Clone(), nil
}

// CreatePlayer inserts a new player owned by an existing session.
func (s *Store) CreatePlayer(player *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[player.SessionID]; !exists {
		return game.ErrSessionNotFound
	}
	s.players[player.ID] = player.Clone()
	s.sessionPlayers[player.SessionID] = append(s.sessionPlayers[player.SessionID], player.ID)
	return nil
}

// GetPlayer retrieves a player by id
func (s *Store) GetPlayer(id string) (*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, exists := s.players[id]
	if !exists {
		return nil, game.ErrPlayerNotFound
	}
	return player.Clone(), nil
}

// PlayersForSession returns all players of a session in join order.
func (s *Store) PlayersForSession(sessionID string) ([]*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, exists := s.sessions[sessionID]; !exists {
		return nil, game.ErrSessionNotFound
	}
	ids := s.sessionPlayers[sessionID]
	players := make([]*models.Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, s.players[id].Clone())
	}
	return players, nil
}

// PlayerIDsForSession returns the ids of a session's players in join order.
func (s *Store) PlayerIDsForSession(sessionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, exists := s.sessions[sessionID]; !exists {
		return nil, game.ErrSessionNotFound
	}
	ids := make([]string, len(s.sessionPlayers[sessionID]))
	copy(ids, s.sessionPlayers[sessionID])
	return ids, nil
}

// UpdatePlayer atomically applies fn to the player. The duplicate-choice
// check and the write it guards both happen inside fn, under the same lock,
// so concurrent submissions cannot interleave between check and commit.
func (s *Store) UpdatePlayer(id string, fn func(*models.Player) error) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, exists := s.players[id]
	if !exists {
		return nil, game.ErrPlayerNotFound
	}
	work := player.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	s.players[id] = work
	return work.Clone(), nil
}

// PutScenario inserts or replaces the scenario for its day.
func (s *Store) PutScenario(scenario *models.Scenario) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc := *scenario
	s.scenarios[scenario.Day] = &sc
}

// ScenarioByDay retrieves the scenario configured for a day.
func (s *Store) ScenarioByDay(day int) (*models.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scenario, exists := s.scenarios[day]
	if !exists {
		return nil, game.ErrScenarioNotFound
	}
	sc := *scenario
	return &sc, nil
}
