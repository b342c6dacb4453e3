package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/skip2/go-qrcode"
	"github.com/teaonrocks/ODAT/internal/game"
)

func (a *API) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := a.sessions.Create()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (a *API) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := a.sessionByCode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	// The host id is a capability, not public state
	session.HostID = ""
	writeJSON(w, http.StatusOK, session)
}

func (a *API) handleSessionPlayers(w http.ResponseWriter, r *http.Request) {
	session, err := a.sessionByCode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	players, err := a.players.GetForSession(session.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// handleSessionQR renders the join URL for a session as a QR code PNG.
func (a *API) handleSessionQR(w http.ResponseWriter, r *http.Request) {
	session, err := a.sessionByCode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	joinURL := a.cfg.PublicBaseURL + "/session/" + session.Code
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (a *API) handleSetTransitionDuration(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DurationMs int `json:"durationMs"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	session, err := a.sessionByCode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	updated, err := a.sessions.SetTransitionDuration(session.ID, r.Header.Get("X-Host-ID"), req.DurationMs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) handleSetHideHits(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HideHits bool `json:"hideHits"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	session, err := a.sessionByCode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	updated, err := a.sessions.SetHideHits(session.ID, r.Header.Get("X-Host-ID"), req.HideHits)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	session, err := a.sessionByCode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	updated, err := a.sessions.CreateGroup(session.ID, r.Header.Get("X-Host-ID"), req.Name, req.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, updated)
}

func (a *API) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	session, err := a.sessionByCode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	updated, err := a.sessions.UpdateGroup(session.ID, r.Header.Get("X-Host-ID"), mux.Vars(r)["groupID"], req.Name, req.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	session, err := a.sessionByCode(r)
	if err != nil {
		writeError(w, err)
		return
	}
	updated, err := a.sessions.DeleteGroup(session.ID, r.Header.Get("X-Host-ID"), mux.Vars(r)["groupID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil {
		writeError(w, game.ErrScenarioNotFound)
		return
	}
	scenario, err := a.catalog.GetByDay(day)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scenario)
}
