package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/pehchaan-index/pulse-api/internal/platform/config"
	firestoreclient "github.com/pehchaan-index/pulse-api/internal/platform/firestore"
	"github.com/pehchaan-index/pulse-api/internal/repository"
)

// Quick diagnostic: row count, month catalog, and snapshot freshness.
func main() {
	ctx := context.Background()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	client, credsSource, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		log.Fatalf("firestore init: %v", err)
	}
	defer client.Close()

	fmt.Printf("Project: %s (credentials via %s)\n\n", cfg.FirebaseProjectID, credsSource)

	updateRepo := repository.NewUpdateRepository(client, cfg.FetchPageSize, cfg.FetchMaxRows)

	count, err := updateRepo.Count(ctx)
	if err != nil {
		log.Fatalf("count rows: %v", err)
	}
	fmt.Printf("Rows in aadhaar_updates: %d\n", count)

	records, err := updateRepo.FetchAll(ctx)
	if err != nil {
		log.Fatalf("fetch rows: %v", err)
	}
	months := map[string]int{}
	for _, rec := range records {
		months[rec.Month]++
	}
	fmt.Printf("Distinct months: %d\n", len(months))
	for m, n := range months {
		fmt.Printf("  %s: %d rows\n", m, n)
	}

	snapshotRepo := repository.NewSnapshotRepository(client)
	stats, err := snapshotRepo.GetSystemStats(ctx)
	if err != nil {
		log.Fatalf("get system stats: %v", err)
	}

	jsonData, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		log.Fatalf("marshal stats: %v", err)
	}
	fmt.Println("\nSystem stats snapshot:")
	fmt.Println(string(jsonData))
}
