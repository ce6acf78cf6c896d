package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/pehchaan-index/pulse-api/pkg/model"
	"github.com/pehchaan-index/pulse-api/pkg/util"
	"google.golang.org/api/iterator"
)

const updatesCollection = "aadhaar_updates"

// UpdateRepository handles Firestore read/write for Aadhaar update rows.
type UpdateRepository struct {
	client   *firestore.Client
	pageSize int
	maxRows  int
}

// NewUpdateRepository creates a repository with the given fetch page size
// and total row cap.
func NewUpdateRepository(client *firestore.Client, pageSize, maxRows int) *UpdateRepository {
	if pageSize <= 0 {
		pageSize = 1000
	}
	if maxRows <= 0 {
		maxRows = 20000
	}
	return &UpdateRepository{client: client, pageSize: pageSize, maxRows: maxRows}
}

// FetchAll pages through the collection ordered by month descending. The
// store enforces a maximum page size, and maxRows caps the accumulated
// total so a runaway collection cannot exhaust memory or loop forever.
// Callers must treat the result as possibly incomplete.
func (r *UpdateRepository) FetchAll(ctx context.Context) ([]model.UpdateRecord, error) {
	var records []model.UpdateRecord
	base := r.client.Collection(updatesCollection).OrderBy("month", firestore.Desc)
	var last *firestore.DocumentSnapshot
	for {
		q := base.Limit(r.pageSize)
		if last != nil {
			q = q.StartAfter(last)
		}
		iter := q.Documents(ctx)
		pageCount := 0
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("iterate updates: %w", err)
			}
			var rec model.UpdateRecord
			if err := doc.DataTo(&rec); err != nil {
				return nil, fmt.Errorf("decode update %s: %w", doc.Ref.ID, err)
			}
			records = append(records, rec)
			last = doc
			pageCount++
		}
		if pageCount < r.pageSize {
			break
		}
		if len(records) >= r.maxRows {
			break
		}
	}
	return records, nil
}

// BatchUpsert writes records in batches to reduce round trips. Document
// IDs derive from the (month, state, district) key, so re-imports of the
// same export overwrite in place.
func (r *UpdateRepository) BatchUpsert(ctx context.Context, records []model.UpdateRecord) error {
	if len(records) == 0 {
		return nil
	}
	const batchSize = 400

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := r.client.Batch()
		for _, rec := range records[start:end] {
			ref := r.client.Collection(updatesCollection).Doc(util.HashRecordKey(rec.Month, rec.State, rec.District))
			batch.Set(ref, rec)
		}
		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("commit batch [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}

// Count returns the number of rows in the collection using a keys-only
// query so documents are not decoded.
func (r *UpdateRepository) Count(ctx context.Context) (int, error) {
	iter := r.client.Collection(updatesCollection).Select().Documents(ctx)
	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("count updates: %w", err)
		}
		count++
	}
	return count, nil
}
