/*
Package main
File: main.go
Description: Server entry point. Loads the item catalog, starts the real-time
WebSocket hub and serves the crafting API.
*/

package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/everforgeworks/harvest-craft/internal/api"
	"github.com/everforgeworks/harvest-craft/internal/config"
	"github.com/everforgeworks/harvest-craft/internal/game"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config Fail: %v", err)
	}

	// 1. Load the static item catalog from YAML
	catalog, err := game.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Catalog Fail: %v", err)
	}
	log.Printf("Catalog loaded: %d craftable items", len(catalog.CraftableNames()))

	// 2. Initialize and start the Real-Time WebSocket Hub
	hub := api.NewHub(cfg.WSSendBuffer)
	go hub.Run()

	svc := game.NewService(catalog, game.NewFarmStore(), hub)

	// 3. Hot-reload logic: Listen for SIGHUP to refresh the catalog without restart
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGHUP)
		for range sigChan {
			log.Println("SIGNAL: Reloading catalog...")
			if err := svc.ReloadCatalog(cfg.CatalogPath); err != nil {
				log.Printf("SIGNAL: Reload failed, keeping previous catalog: %v", err)
			}
		}
	}()

	// 4. Start the Server
	handlers := api.NewHandlers(svc, hub)
	log.Printf("HARVEST CRAFT Server live on %s", cfg.Addr)
	log.Printf("Real-time Hub: Online")

	if err := http.ListenAndServe(cfg.Addr, api.CorsMiddleware(handlers.Routes())); err != nil {
		log.Fatal(err)
	}
}
