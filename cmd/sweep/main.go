// Command main deactivates expired user bans. Intended to run from cron.
package main

import (
	"context"
	"log"
	"time"

	"nexum/internal/config"
	"nexum/internal/database"
	"nexum/internal/middleware"
	"nexum/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	moderation := service.NewModerationService(db)
	cleaned, err := moderation.CleanupExpiredBans(ctx)
	if err != nil {
		log.Fatalf("Ban sweep failed: %v", err)
	}
	middleware.BanSweepDeactivated.Add(float64(cleaned))

	log.Printf("Ban sweep complete: %d ban(s) deactivated", cleaned)
}
