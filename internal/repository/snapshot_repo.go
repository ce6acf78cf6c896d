package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pehchaan-index/pulse-api/pkg/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	systemCollection = "system"
	statsDocID       = "stats"
)

// SnapshotRepository persists the singleton system stats document so the
// dashboard can show store-wide totals without re-reading every row.
type SnapshotRepository struct {
	client *firestore.Client
}

func NewSnapshotRepository(client *firestore.Client) *SnapshotRepository {
	return &SnapshotRepository{client: client}
}

// SaveSystemStats overwrites the stats document and stamps LastUpdated.
func (r *SnapshotRepository) SaveSystemStats(ctx context.Context, stats model.SystemStats) error {
	stats.LastUpdated = time.Now().UTC()
	_, err := r.client.Collection(systemCollection).Doc(statsDocID).Set(ctx, stats)
	if err != nil {
		return fmt.Errorf("save system stats: %w", err)
	}
	return nil
}

// GetSystemStats reads the stats document. A missing document is not an
// error; it returns zero stats so a fresh deployment renders empty cards.
func (r *SnapshotRepository) GetSystemStats(ctx context.Context) (model.SystemStats, error) {
	doc, err := r.client.Collection(systemCollection).Doc(statsDocID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return model.SystemStats{}, nil
		}
		return model.SystemStats{}, fmt.Errorf("get system stats: %w", err)
	}
	var stats model.SystemStats
	if err := doc.DataTo(&stats); err != nil {
		return model.SystemStats{}, fmt.Errorf("decode system stats: %w", err)
	}
	return stats, nil
}
