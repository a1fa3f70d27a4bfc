// Command main runs the database seeder for LearnHub.
package main

import (
	"flag"
	"log"

	"learnhub/internal/config"
	"learnhub/internal/database"
	"learnhub/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of demo users to create")
	adminPassword := flag.String("admin-password", "", "Password for the seeded admin account")
	shouldClean := flag.Bool("clean", false, "Clean users table before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(seed.Options{
		NumUsers:      *numUsers,
		AdminPassword: *adminPassword,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
