package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/teaonrocks/ODAT/internal/game"
	"github.com/teaonrocks/ODAT/internal/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

// statusFor maps the domain error taxonomy onto HTTP codes in one place.
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrSessionNotFound),
		errors.Is(err, game.ErrPlayerNotFound),
		errors.Is(err, game.ErrScenarioNotFound),
		errors.Is(err, game.ErrGroupNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, game.ErrInvalidAmount),
		errors.Is(err, game.ErrInvalidDuration),
		errors.Is(err, game.ErrInvalidAction):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrInvalidTransition),
		errors.Is(err, game.ErrDuplicateChoice),
		errors.Is(err, game.ErrBorrowLimitExceeded),
		errors.Is(err, game.ErrNoLoan),
		errors.Is(err, game.ErrExceedsBalance),
		errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrAlreadyPawned),
		errors.Is(err, game.ErrNotPawned):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// sessionByCode resolves the {code} route variable to a session.
func (a *API) sessionByCode(r *http.Request) (*models.Session, error) {
	return a.sessions.GetByCode(mux.Vars(r)["code"])
}

// hostOp adapts a host-only state-machine operation to a handler. The
// caller proves it is the host with the X-Host-ID header issued at
// session creation.
func (a *API) hostOp(op func(sessionID, hostID string) (*models.Session, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := a.sessionByCode(r)
		if err != nil {
			writeError(w, err)
			return
		}
		updated, err := op(current.ID, r.Header.Get("X-Host-ID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}
