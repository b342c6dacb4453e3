package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/teaonrocks/ODAT/internal/models"
)

func (a *API) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	req.Name = strings.TrimSpace(req.Name)
	if req.Code == "" || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "code and name are required"})
		return
	}

	player, err := a.players.Join(req.Code, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, player)
}

func (a *API) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := a.players.GetByID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (a *API) handleSubmitChoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Day         int                `json:"day"`
		Choice      string             `json:"choice"`
		Consequence models.Consequence `json:"consequence"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	player, err := a.players.SubmitChoice(mux.Vars(r)["id"], req.Day, req.Choice, req.Consequence)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (a *API) handleBorrow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int `json:"amount"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	player, err := a.players.BorrowMoney(mux.Vars(r)["id"], req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (a *API) handleRepay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int `json:"amount"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	player, err := a.players.RepayLoan(mux.Vars(r)["id"], req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (a *API) handlePawnRing(w http.ResponseWriter, r *http.Request) {
	player, err := a.players.PawnRing(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (a *API) handleRedeemRing(w http.ResponseWriter, r *http.Request) {
	player, err := a.players.RedeemRing(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (a *API) handleLoanReminder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action"`
		Day    int    `json:"day"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	result, err := a.players.HandleLoanReminder(mux.Vars(r)["id"], req.Action, req.Day)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleAssignGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupID string `json:"groupId"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	player, err := a.players.AssignToGroup(mux.Vars(r)["id"], req.GroupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}
