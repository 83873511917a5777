package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/headwind-cms/headwind/pkg/domain/interfaces"
	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
)

func newEntry(typeID types.ContentTypeID, recordID types.RecordID, action model.ActivityAction) *model.ActivityEntry {
	return &model.ActivityEntry{
		ID:            model.NewActivityID(),
		ContentTypeID: typeID,
		RecordID:      recordID,
		Action:        action,
		CreatedAt:     time.Now().UTC(),
	}
}

func runActivityRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Record and ListByRecord", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		typeID := types.NewContentTypeID()
		recordID := types.NewRecordID()

		gt.NoError(t, repo.Activity().Record(ctx, newEntry(typeID, recordID, model.ActivityActionCreate)))
		time.Sleep(10 * time.Millisecond)
		gt.NoError(t, repo.Activity().Record(ctx, newEntry(typeID, recordID, model.ActivityActionUpdate)))

		entries, err := repo.Activity().ListByRecord(ctx, typeID, recordID, 10)
		gt.NoError(t, err).Required()
		gt.Value(t, len(entries)).Equal(2)

		// Newest first
		gt.Value(t, entries[0].Action).Equal(model.ActivityActionUpdate)
		gt.Value(t, entries[1].Action).Equal(model.ActivityActionCreate)
	})

	t.Run("ListByRecord honors the limit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		typeID := types.NewContentTypeID()
		recordID := types.NewRecordID()

		for i := 0; i < 5; i++ {
			gt.NoError(t, repo.Activity().Record(ctx, newEntry(typeID, recordID, model.ActivityActionUpdate)))
			time.Sleep(5 * time.Millisecond)
		}

		entries, err := repo.Activity().ListByRecord(ctx, typeID, recordID, 3)
		gt.NoError(t, err).Required()
		gt.Value(t, len(entries)).Equal(3)
	})

	t.Run("ListByRecord filters by record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		typeID := types.NewContentTypeID()
		recordID := types.NewRecordID()
		otherID := types.NewRecordID()

		gt.NoError(t, repo.Activity().Record(ctx, newEntry(typeID, recordID, model.ActivityActionCreate)))
		gt.NoError(t, repo.Activity().Record(ctx, newEntry(typeID, otherID, model.ActivityActionDelete)))

		entries, err := repo.Activity().ListByRecord(ctx, typeID, recordID, 10)
		gt.NoError(t, err).Required()
		gt.Value(t, len(entries)).Equal(1)
		gt.Value(t, entries[0].RecordID).Equal(recordID)
	})

	t.Run("ListByRecord with no entries is empty", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		entries, err := repo.Activity().ListByRecord(ctx, types.NewContentTypeID(), types.NewRecordID(), 10)
		gt.NoError(t, err).Required()
		gt.Value(t, len(entries)).Equal(0)
	})
}

func TestMemoryActivityRepository(t *testing.T) {
	runActivityRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreActivityRepository(t *testing.T) {
	runActivityRepositoryTest(t, newFirestoreRepository)
}
