// Command seed refreshes the community catalog from the fixture file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"devcomm/internal/cache"
	"devcomm/internal/config"
	"devcomm/internal/database"
	"devcomm/internal/repository"
	"devcomm/internal/seed"
)

func main() {
	var fixture string
	flag.StringVar(&fixture, "fixture", "", "path to the fixture file (defaults to SEED_FIXTURE)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if fixture == "" {
		fixture = cfg.SeedFixture
	}

	// The refresh invalidates cached records; without a client the running
	// deployment would keep serving the old catalog until the TTLs expire.
	cache.InitRedis(cfg.RedisURL)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repo := repository.NewCommunityRepository(db)
	distribution, err := seed.Communities(ctx, repo, fixture)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	total := 0
	labels := make([]string, 0, len(distribution))
	for label, n := range distribution {
		labels = append(labels, label)
		total += n
	}
	sort.Strings(labels)

	fmt.Printf("Seeded %d communities from %s\n", total, fixture)
	fmt.Println("Tech stack distribution:")
	for _, label := range labels {
		fmt.Printf("  %-20s %d\n", label, distribution[label])
	}
}
