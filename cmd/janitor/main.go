package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"inkpress/internal/config"
	"inkpress/internal/database"
	"inkpress/internal/maintenance"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report what would be deleted without deleting")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Connecting to database: %s", cfg.Database.DatabaseConnStringSafe())
	db, err := database.NewDB(cfg.Database.DatabaseConnString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := maintenance.SweepOrphanedComments(db, *dryRun); err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}

	log.Println("Database cleanup complete!")
}
