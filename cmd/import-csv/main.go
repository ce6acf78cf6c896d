package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pehchaan-index/pulse-api/internal/business/analytics"
	"github.com/pehchaan-index/pulse-api/internal/platform/config"
	firestoreclient "github.com/pehchaan-index/pulse-api/internal/platform/firestore"
	"github.com/pehchaan-index/pulse-api/internal/repository"
)

func main() {
	filePath := flag.String("file", "", "path to a local CSV export")
	url := flag.String("url", "", "URL of a CSV export to download")
	force := flag.Bool("force", false, "import even when the store already holds rows")
	flag.Parse()

	if (*filePath == "") == (*url == "") {
		log.Fatal("provide exactly one of -file or -url")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	firestoreClient, _, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		log.Fatalf("firestore init: %v", err)
	}
	defer firestoreClient.Close()

	var csvText, source string
	if *filePath != "" {
		data, err := os.ReadFile(*filePath)
		if err != nil {
			log.Fatalf("read %s: %v", *filePath, err)
		}
		csvText, source = string(data), *filePath
	} else {
		fetcher := analytics.NewHTTPFetcher()
		body, err := fetcher.FetchText(ctx, *url)
		if err != nil {
			log.Fatalf("download csv: %v", err)
		}
		csvText, source = body, *url
	}

	updateRepo := repository.NewUpdateRepository(firestoreClient, cfg.FetchPageSize, cfg.FetchMaxRows)
	runRepo := repository.NewRunRepository(firestoreClient)
	snapshotRepo := repository.NewSnapshotRepository(firestoreClient)
	svc := analytics.NewService(updateRepo, runRepo, snapshotRepo)

	stats, err := svc.ImportSync(ctx, source, csvText, *force)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %s\n", source)
	fmt.Printf("  rows parsed:    %d\n", stats.RowsParsed)
	fmt.Printf("  rows inserted:  %d\n", stats.Inserted)
	fmt.Printf("  short rows:     %d\n", stats.ShortRows)
	fmt.Printf("  fields coerced: %d\n", stats.FieldsCoerced)
	if stats.ShortRows > 0 || stats.FieldsCoerced > 0 {
		fmt.Println("  warning: source data had malformed rows; check the export")
	}
}
