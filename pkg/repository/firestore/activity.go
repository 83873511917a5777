package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
)

type activityDocument struct {
	ID            string    `firestore:"id"`
	ContentTypeID string    `firestore:"content_type_id"`
	RecordID      string    `firestore:"record_id"`
	Action        string    `firestore:"action"`
	CreatedAt     time.Time `firestore:"created_at"`
}

type activityRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newActivityRepository(client *firestore.Client) *activityRepository {
	return &activityRepository{
		client: client,
	}
}

func (r *activityRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_activities"
	}
	return "activities"
}

func activityToDocument(entry *model.ActivityEntry) *activityDocument {
	return &activityDocument{
		ID:            string(entry.ID),
		ContentTypeID: string(entry.ContentTypeID),
		RecordID:      string(entry.RecordID),
		Action:        string(entry.Action),
		CreatedAt:     entry.CreatedAt,
	}
}

func activityToModel(doc *activityDocument) *model.ActivityEntry {
	return &model.ActivityEntry{
		ID:            model.ActivityID(doc.ID),
		ContentTypeID: types.ContentTypeID(doc.ContentTypeID),
		RecordID:      types.RecordID(doc.RecordID),
		Action:        model.ActivityAction(doc.Action),
		CreatedAt:     doc.CreatedAt,
	}
}

func (r *activityRepository) Record(ctx context.Context, entry *model.ActivityEntry) error {
	if entry.ID == "" {
		entry.ID = model.NewActivityID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	doc := activityToDocument(entry)

	docRef := r.client.Collection(r.collection()).Doc(string(entry.ID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to record activity", goerr.V("id", entry.ID))
	}

	return nil
}

// ListByRecord requires a composite index on (content_type_id, record_id,
// created_at desc). The migrate command creates it.
func (r *activityRepository) ListByRecord(ctx context.Context, typeID types.ContentTypeID, recordID types.RecordID, limit int) ([]*model.ActivityEntry, error) {
	query := r.client.Collection(r.collection()).
		Where("content_type_id", "==", string(typeID)).
		Where("record_id", "==", string(recordID)).
		OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var entries []*model.ActivityEntry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate activities",
				goerr.V("type_id", typeID), goerr.V("record_id", recordID))
		}

		var actDoc activityDocument
		if err := doc.DataTo(&actDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal activity")
		}

		entries = append(entries, activityToModel(&actDoc))
	}

	return entries, nil
}
