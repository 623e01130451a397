// Command main seeds the database with demo posts for development.
package main

import (
	"context"
	"flag"
	"log"

	"plume/internal/config"
	"plume/internal/database"
	"plume/internal/repository"
	"plume/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	count := flag.Int("count", 25, "number of demo posts to create")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	repo := repository.NewPostRepository(db)
	if err := seed.Posts(context.Background(), repo, *count); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d posts into %s", *count, cfg.DBPath())
}
