package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"github.com/joho/godotenv"
	"github.com/pehchaan-index/pulse-api/internal/platform/config"
	firestoreclient "github.com/pehchaan-index/pulse-api/internal/platform/firestore"
	"github.com/pehchaan-index/pulse-api/pkg/model"
	"github.com/pehchaan-index/pulse-api/pkg/util"
)

// Re-applies title-case normalization to stored state and district names.
// Rows imported before the normalizer existed may carry raw uppercase
// names, which splits one state into two aggregation buckets.
func main() {
	dryRun := flag.Bool("dry-run", false, "Preview changes without writing to Firestore")
	monthFilter := flag.String("month", "", "Only process rows of one month (YYYY-MM), empty for all")
	flag.Parse()

	ctx := context.Background()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, credsSource, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer client.Close()

	log.Printf("Connected to Firestore project %s using %s credentials", cfg.FirebaseProjectID, credsSource)

	mode := "LIVE"
	if *dryRun {
		mode = "DRY-RUN"
	}

	fmt.Printf("\n=== Name Normalization Migration [%s] ===\n", mode)
	fmt.Printf("Month filter: %s\n", orAll(*monthFilter))
	fmt.Println("==========================================")

	if err := normalizeNames(ctx, client, *dryRun, *monthFilter); err != nil {
		log.Fatalf("Failed to normalize names: %v", err)
	}

	fmt.Println("==========================================")
	fmt.Println("Migration completed!")
}

func normalizeNames(ctx context.Context, client *firestore.Client, dryRun bool, monthFilter string) error {
	fmt.Println("\nScanning aadhaar_updates collection...")

	query := client.Collection("aadhaar_updates").Query
	if monthFilter != "" {
		query = query.Where("month", "==", monthFilter)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("failed to get updates: %w", err)
	}

	total := len(docs)
	fmt.Printf("Found %d update documents\n", total)

	if total == 0 {
		fmt.Println("No rows to process")
		return nil
	}

	needsFix := 0
	alreadyClean := 0
	var toFix []fixItem

	for _, doc := range docs {
		var rec model.UpdateRecord
		if err := doc.DataTo(&rec); err != nil {
			log.Printf("Warning: failed to parse doc %s: %v", doc.Ref.ID, err)
			continue
		}

		normState := util.NormalizeCase(rec.State)
		normDistrict := util.NormalizeCase(rec.District)
		if normState == rec.State && normDistrict == rec.District {
			alreadyClean++
			continue
		}

		needsFix++
		fixed := rec
		fixed.State = normState
		fixed.District = normDistrict
		toFix = append(toFix, fixItem{ref: doc.Ref, fixed: fixed})

		if dryRun && needsFix <= 5 {
			fmt.Printf("\n--- Sample %d: %s ---\n", needsFix, doc.Ref.ID)
			fmt.Printf("BEFORE: state=%q district=%q\n", rec.State, rec.District)
			fmt.Printf("AFTER:  state=%q district=%q\n", normState, normDistrict)
		}
	}

	fmt.Printf("\n=== Analysis Summary ===\n")
	fmt.Printf("Total documents:  %d\n", total)
	fmt.Printf("Need fixing:      %d\n", needsFix)
	fmt.Printf("Already clean:    %d\n", alreadyClean)

	if needsFix == 0 {
		fmt.Println("\nNo documents need fixing!")
		return nil
	}

	if dryRun {
		fmt.Printf("\n[DRY-RUN] Would rewrite %d documents. Run without --dry-run to apply changes.\n", needsFix)
		return nil
	}

	fmt.Printf("\nRewriting %d documents...\n", needsFix)

	// The document ID derives from the names, so a fix moves the row to a
	// new ID: write the fixed doc and delete the old one in the same batch.
	batchSize := 100
	updated := 0

	for i := 0; i < len(toFix); i += batchSize {
		end := i + batchSize
		if end > len(toFix) {
			end = len(toFix)
		}

		batch := client.Batch()
		for j := i; j < end; j++ {
			item := toFix[j]
			newID := util.HashRecordKey(item.fixed.Month, item.fixed.State, item.fixed.District)
			newRef := client.Collection("aadhaar_updates").Doc(newID)
			batch.Set(newRef, item.fixed)
			if newRef.ID != item.ref.ID {
				batch.Delete(item.ref)
			}
			updated++
		}

		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit batch: %w", err)
		}

		fmt.Printf("  Progress: %d/%d documents rewritten\n", updated, needsFix)
	}

	fmt.Printf("\nSuccessfully rewrote %d documents\n", updated)
	return nil
}

func orAll(s string) string {
	if s == "" {
		return "(all months)"
	}
	return s
}

type fixItem struct {
	ref   *firestore.DocumentRef
	fixed model.UpdateRecord
}
