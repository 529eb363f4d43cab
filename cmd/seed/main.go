// Command seed populates the database with demo content.
package main

import (
	"flag"
	"log"

	"gazette/internal/config"
	"gazette/internal/database"
	"gazette/internal/seed"
)

func main() {
	numAuthors := flag.Int("authors", 5, "Number of author accounts to create")
	numReaders := flag.Int("readers", 30, "Number of reader accounts to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s, err := seed.NewSeeder(db)
	if err != nil {
		log.Fatalf("Failed to create seeder: %v", err)
	}

	if err := s.Run(seed.Options{
		NumAuthors:  *numAuthors,
		NumReaders:  *numReaders,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
