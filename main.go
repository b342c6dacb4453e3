package main

import (
	"log"

	"github.com/teaonrocks/ODAT/internal/api"
	"github.com/teaonrocks/ODAT/internal/config"
	"github.com/teaonrocks/ODAT/internal/ledger"
	"github.com/teaonrocks/ODAT/internal/scenario"
	"github.com/teaonrocks/ODAT/internal/session"
	"github.com/teaonrocks/ODAT/internal/sse"
	"github.com/teaonrocks/ODAT/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db := store.New()

	catalog := scenario.NewCatalog(db)
	if err := catalog.Seed(cfg.ScenarioPath); err != nil {
		log.Fatal("Failed to seed scenarios:", err)
	}

	sessions := session.NewService(db, catalog, cfg.InstructionSlides)
	players := ledger.NewService(db)
	hub := sse.NewHub()

	server := api.New(cfg, sessions, players, catalog, hub)
	if err := server.Start(); err != nil {
		log.Fatal("Server error:", err)
	}
}
