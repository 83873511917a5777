package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
)

type recordKey struct {
	typeID types.ContentTypeID
	id     types.RecordID
}

type contentRepository struct {
	mu      sync.RWMutex
	records map[recordKey]*model.ContentRecord
}

func newContentRepository() *contentRepository {
	return &contentRepository{
		records: make(map[recordKey]*model.ContentRecord),
	}
}

// copyRecord creates a deep copy of a content record
func copyRecord(record *model.ContentRecord) *model.ContentRecord {
	return &model.ContentRecord{
		ID:            record.ID,
		ContentTypeID: record.ContentTypeID,
		Data:          record.Data.Clone(),
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func (r *contentRepository) Create(ctx context.Context, record *model.ContentRecord) (*model.ContentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyRecord(record)
	if created.ID == "" {
		created.ID = types.NewRecordID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.records[recordKey{created.ContentTypeID, created.ID}] = created
	return copyRecord(created), nil
}

func (r *contentRepository) Get(ctx context.Context, typeID types.ContentTypeID, id types.RecordID) (*model.ContentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[recordKey{typeID, id}]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "content record not found",
			goerr.V("type_id", typeID), goerr.V("id", id))
	}

	return copyRecord(record), nil
}

func (r *contentRepository) List(ctx context.Context, typeID types.ContentTypeID) ([]*model.ContentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []*model.ContentRecord
	for key, record := range r.records {
		if key.typeID == typeID {
			list = append(list, copyRecord(record))
		}
	}

	// Newest first, matching the firestore backend's ordering
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})

	return list, nil
}

func (r *contentRepository) Update(ctx context.Context, record *model.ContentRecord) (*model.ContentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey{record.ContentTypeID, record.ID}
	existing, exists := r.records[key]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "content record not found",
			goerr.V("type_id", record.ContentTypeID), goerr.V("id", record.ID))
	}

	updated := copyRecord(record)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.records[key] = updated
	return copyRecord(updated), nil
}

func (r *contentRepository) Delete(ctx context.Context, typeID types.ContentTypeID, id types.RecordID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey{typeID, id}
	if _, exists := r.records[key]; !exists {
		return goerr.Wrap(ErrNotFound, "content record not found",
			goerr.V("type_id", typeID), goerr.V("id", id))
	}

	delete(r.records, key)
	return nil
}
