package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
)

type activityRepository struct {
	mu      sync.RWMutex
	entries []*model.ActivityEntry
}

func newActivityRepository() *activityRepository {
	return &activityRepository{}
}

func copyActivity(entry *model.ActivityEntry) *model.ActivityEntry {
	copied := *entry
	return &copied
}

func (r *activityRepository) Record(ctx context.Context, entry *model.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyActivity(entry)
	if stored.ID == "" {
		stored.ID = model.NewActivityID()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	r.entries = append(r.entries, stored)
	return nil
}

func (r *activityRepository) ListByRecord(ctx context.Context, typeID types.ContentTypeID, recordID types.RecordID, limit int) ([]*model.ActivityEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*model.ActivityEntry
	for _, entry := range r.entries {
		if entry.ContentTypeID == typeID && entry.RecordID == recordID {
			matched = append(matched, copyActivity(entry))
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}
