package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/pehchaan-index/pulse-api/pkg/model"
	"google.golang.org/api/iterator"
)

const runsCollection = "import_runs"

// RunRepository persists import run lifecycle records.
type RunRepository struct {
	client *firestore.Client
}

func NewRunRepository(client *firestore.Client) *RunRepository {
	return &RunRepository{client: client}
}

// CreateRun writes the initial run record keyed by its run ID.
func (r *RunRepository) CreateRun(ctx context.Context, run model.ImportRun) error {
	_, err := r.client.Collection(runsCollection).Doc(run.RunID).Set(ctx, run)
	if err != nil {
		return fmt.Errorf("create run %s: %w", run.RunID, err)
	}
	return nil
}

// UpdateRun overwrites the run record with its final state.
func (r *RunRepository) UpdateRun(ctx context.Context, run model.ImportRun) error {
	_, err := r.client.Collection(runsCollection).Doc(run.RunID).Set(ctx, run)
	if err != nil {
		return fmt.Errorf("update run %s: %w", run.RunID, err)
	}
	return nil
}

// GetRun fetches a single run record by ID.
func (r *RunRepository) GetRun(ctx context.Context, runID string) (model.ImportRun, error) {
	doc, err := r.client.Collection(runsCollection).Doc(runID).Get(ctx)
	if err != nil {
		return model.ImportRun{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	var run model.ImportRun
	if err := doc.DataTo(&run); err != nil {
		return model.ImportRun{}, fmt.Errorf("decode run %s: %w", runID, err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]model.ImportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	iter := r.client.Collection(runsCollection).
		OrderBy("startedAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)

	runs := []model.ImportRun{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate runs: %w", err)
		}
		var run model.ImportRun
		if err := doc.DataTo(&run); err != nil {
			return nil, fmt.Errorf("decode run %s: %w", doc.Ref.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
