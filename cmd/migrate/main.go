package main

import (
	"context"
	"log"
	"os"

	"github.com/quatton/metashare/pkg/db"
	"github.com/quatton/metashare/pkg/msapi/config"
	"github.com/uptrace/bun/migrate"
)

// Usage: migrate [up|down]
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to process env vars: %v", err)
	}

	ctx := context.Background()

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close()

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	var group *migrate.MigrationGroup
	switch direction {
	case "up":
		log.Println("Running migrations...")
		group, err = db.Migrate(ctx, database)
	case "down":
		log.Println("Rolling back last migration group...")
		group, err = db.Rollback(ctx, database)
	default:
		log.Fatalf("unknown direction %q, want up or down", direction)
	}
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if group.IsZero() {
		log.Println("Nothing to do, database is up to date.")
		return
	}
	log.Printf("✓ %s %s\n", direction, group)
}
