package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/teaonrocks/ODAT/internal/config"
	"github.com/teaonrocks/ODAT/internal/ledger"
	"github.com/teaonrocks/ODAT/internal/models"
	"github.com/teaonrocks/ODAT/internal/scenario"
	"github.com/teaonrocks/ODAT/internal/session"
	"github.com/teaonrocks/ODAT/internal/sse"
)

// API exposes the session state machine and player ledger over JSON, plus
// the SSE stream the presentation layer subscribes to.
type API struct {
	router   *mux.Router
	cfg      *config.Config
	sessions *session.Service
	players  *ledger.Service
	catalog  *scenario.Catalog
	hub      *sse.Hub
}

// New wires the services to the router and subscribes the SSE hub to
// their change feeds.
func New(cfg *config.Config, sessions *session.Service, players *ledger.Service, catalog *scenario.Catalog, hub *sse.Hub) *API {
	a := &API{
		router:   mux.NewRouter(),
		cfg:      cfg,
		sessions: sessions,
		players:  players,
		catalog:  catalog,
		hub:      hub,
	}

	sessions.OnChange(func(s *models.Session) {
		data, err := json.Marshal(s)
		if err != nil {
			log.Printf("marshal session update: %v", err)
			return
		}
		hub.Broadcast(s.ID, sse.EventSessionUpdate, string(data))
	})
	players.OnChange(func(p *models.Player) {
		data, err := json.Marshal(p)
		if err != nil {
			log.Printf("marshal player update: %v", err)
			return
		}
		hub.Broadcast(p.SessionID, sse.EventPlayerUpdate, string(data))
	})

	a.setupRoutes()
	return a
}

func (a *API) setupRoutes() {
	// Sessions
	a.router.HandleFunc("/api/sessions", a.handleCreateSession).Methods("POST")
	a.router.HandleFunc("/api/sessions/{code}", a.handleGetSession).Methods("GET")
	a.router.HandleFunc("/api/sessions/{code}/qr", a.handleSessionQR).Methods("GET")
	a.router.HandleFunc("/api/sessions/{code}/players", a.handleSessionPlayers).Methods("GET")
	a.router.HandleFunc("/api/sessions/{code}/events", a.handleSSE).Methods("GET")

	// Host-only phase transitions
	a.router.HandleFunc("/api/sessions/{code}/instructions/start", a.hostOp(a.sessions.StartInstructions)).Methods("POST")
	a.router.HandleFunc("/api/sessions/{code}/instructions/next", a.hostOp(a.sessions.NextInstruction)).Methods("POST")
	a.router.HandleFunc("/api/sessions/{code}/instructions/prev", a.hostOp(a.sessions.PrevInstruction)).Methods("POST")
	a.router.HandleFunc("/api/sessions/{code}/game/start", a.hostOp(a.sessions.StartGame)).Methods("POST")
	a.router.HandleFunc("/api/sessions/{code}/day/scenario", a.hostOp(a.sessions.ShowDayScenario)).Methods("POST")
	a.router.HandleFunc("/api/sessions/{code}/day/result", a.hostOp(a.sessions.ShowDayResult)).Methods("POST")
	a.router.HandleFunc("/api/sessions/{code}/day/subpage/next", a.hostOp(a.sessions.NextSubPage)).Methods("POST")
	a.router.HandleFunc("/api/sessions/{code}/day/advance", a.hostOp(a.sessions.AdvanceDay)).Methods("POST")

	// Host-only settings and groups
	a.router.HandleFunc("/api/sessions/{code}/transition-duration", a.handleSetTransitionDuration).Methods("PUT")
	a.router.HandleFunc("/api/sessions/{code}/hide-hits", a.handleSetHideHits).Methods("PUT")
	a.router.HandleFunc("/api/sessions/{code}/groups", a.handleCreateGroup).Methods("POST")
	a.router.HandleFunc("/api/sessions/{code}/groups/{groupID}", a.handleUpdateGroup).Methods("PUT")
	a.router.HandleFunc("/api/sessions/{code}/groups/{groupID}", a.handleDeleteGroup).Methods("DELETE")

	// Players
	a.router.HandleFunc("/api/players/join", a.handleJoin).Methods("POST")
	a.router.HandleFunc("/api/players/{id}", a.handleGetPlayer).Methods("GET")
	a.router.HandleFunc("/api/players/{id}/choice", a.handleSubmitChoice).Methods("POST")
	a.router.HandleFunc("/api/players/{id}/borrow", a.handleBorrow).Methods("POST")
	a.router.HandleFunc("/api/players/{id}/repay", a.handleRepay).Methods("POST")
	a.router.HandleFunc("/api/players/{id}/ring/pawn", a.handlePawnRing).Methods("POST")
	a.router.HandleFunc("/api/players/{id}/ring/redeem", a.handleRedeemRing).Methods("POST")
	a.router.HandleFunc("/api/players/{id}/loan-reminder", a.handleLoanReminder).Methods("POST")
	a.router.HandleFunc("/api/players/{id}/group", a.handleAssignGroup).Methods("PUT")

	// Scenarios (read-only)
	a.router.HandleFunc("/api/scenarios/{day}", a.handleGetScenario).Methods("GET")
}

// Handler returns the fully wrapped HTTP handler.
func (a *API) Handler() http.Handler {
	corsOptions := cors.Options{
		AllowedOrigins:   a.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Host-ID"},
		AllowCredentials: false,
	}
	return cors.New(corsOptions).Handler(a.router)
}

// Start runs the HTTP server.
func (a *API) Start() error {
	log.Printf("API server listening on http://%s", a.cfg.Bind)
	return http.ListenAndServe(a.cfg.Bind, a.Handler())
}
