package session

import (
	"github.com/google/uuid"
	"github.com/teaonrocks/ODAT/internal/game"
	"github.com/teaonrocks/ODAT/internal/models"
)

// Group CRUD is only permitted while the session is still in LOBBY; once
// instructions start the cohort list is frozen.

// CreateGroup adds a named cohort to the session.
func (s *Service) CreateGroup(sessionID, hostID, name, color string) (*models.Session, error) {
	return s.mutate(sessionID, hostID, func(session *models.Session) error {
		if session.Phase != models.PhaseLobby {
			return game.ErrInvalidTransition
		}
		session.Groups = append(session.Groups, models.Group{
			ID:    uuid.New().String(),
			Name:  name,
			Color: color,
		})
		return nil
	})
}

// UpdateGroup renames or recolors an existing cohort.
func (s *Service) UpdateGroup(sessionID, hostID, groupID, name, color string) (*models.Session, error) {
	return s.mutate(sessionID, hostID, func(session *models.Session) error {
		if session.Phase != models.PhaseLobby {
			return game.ErrInvalidTransition
		}
		for i := range session.Groups {
			if session.Groups[i].ID == groupID {
				session.Groups[i].Name = name
				session.Groups[i].Color = color
				return nil
			}
		}
		return game.ErrGroupNotFound
	})
}

// DeleteGroup removes a cohort and clears it from every player that had
// picked it.
func (s *Service) DeleteGroup(sessionID, hostID, groupID string) (*models.Session, error) {
	session, err := s.mutate(sessionID, hostID, func(session *models.Session) error {
		if session.Phase != models.PhaseLobby {
			return game.ErrInvalidTransition
		}
		for i := range session.Groups {
			if session.Groups[i].ID == groupID {
				session.Groups = append(session.Groups[:i], session.Groups[i+1:]...)
				return nil
			}
		}
		return game.ErrGroupNotFound
	})
	if err != nil {
		return nil, err
	}

	ids, err := s.store.PlayerIDsForSession(sessionID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		_, err := s.store.UpdatePlayer(id, func(p *models.Player) error {
			if p.GroupID == groupID {
				p.GroupID = ""
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return session, nil
}
