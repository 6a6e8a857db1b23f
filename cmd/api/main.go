package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/comitanigiacomo/kanso-balance/internal/app"
	"github.com/comitanigiacomo/kanso-balance/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: Invalid configuration: %v", err)
	}

	application, err := app.New(cfg, nil)
	if err != nil {
		log.Fatalf("Critical: Failed to start: %v", err)
	}
	defer application.Close()

	log.Printf("Categories: %d, scoring mode: %s, week starts %s", application.Catalog.Len(), cfg.ScoringMode, cfg.WeekStart)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Serve(ctx); err != nil {
		log.Fatal("Server error:", err)
	}
}
