package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
)

type contentRecordDocument struct {
	ID            string         `firestore:"id"`
	ContentTypeID string         `firestore:"content_type_id"`
	Data          map[string]any `firestore:"data"`
	CreatedAt     time.Time      `firestore:"created_at"`
	UpdatedAt     time.Time      `firestore:"updated_at"`
}

type contentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newContentRepository(client *firestore.Client) *contentRepository {
	return &contentRepository{
		client: client,
	}
}

func (r *contentRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_content_records"
	}
	return "content_records"
}

func recordToDocument(record *model.ContentRecord) *contentRecordDocument {
	return &contentRecordDocument{
		ID:            string(record.ID),
		ContentTypeID: string(record.ContentTypeID),
		Data:          record.Data,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func recordToModel(doc *contentRecordDocument) *model.ContentRecord {
	return &model.ContentRecord{
		ID:            types.RecordID(doc.ID),
		ContentTypeID: types.ContentTypeID(doc.ContentTypeID),
		Data:          model.ValidatedRecord(doc.Data),
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

// docID namespaces record documents by content type so the same record ID
// under different types cannot collide
func (r *contentRepository) docID(typeID types.ContentTypeID, id types.RecordID) string {
	return string(typeID) + ":" + string(id)
}

func (r *contentRepository) Create(ctx context.Context, record *model.ContentRecord) (*model.ContentRecord, error) {
	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = types.NewRecordID()
	}
	record.CreatedAt = now
	record.UpdatedAt = now

	doc := recordToDocument(record)

	docRef := r.client.Collection(r.collection()).Doc(r.docID(record.ContentTypeID, record.ID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create content record", goerr.V("id", record.ID))
	}

	return recordToModel(doc), nil
}

func (r *contentRepository) Get(ctx context.Context, typeID types.ContentTypeID, id types.RecordID) (*model.ContentRecord, error) {
	docRef := r.client.Collection(r.collection()).Doc(r.docID(typeID, id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "content record not found",
				goerr.V("type_id", typeID), goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get content record", goerr.V("id", id))
	}

	var recDoc contentRecordDocument
	if err := doc.DataTo(&recDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal content record", goerr.V("id", id))
	}

	return recordToModel(&recDoc), nil
}

func (r *contentRepository) List(ctx context.Context, typeID types.ContentTypeID) ([]*model.ContentRecord, error) {
	iter := r.client.Collection(r.collection()).
		Where("content_type_id", "==", string(typeID)).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var records []*model.ContentRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate content records", goerr.V("type_id", typeID))
		}

		var recDoc contentRecordDocument
		if err := doc.DataTo(&recDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal content record")
		}

		records = append(records, recordToModel(&recDoc))
	}

	return records, nil
}

func (r *contentRepository) Update(ctx context.Context, record *model.ContentRecord) (*model.ContentRecord, error) {
	docRef := r.client.Collection(r.collection()).Doc(r.docID(record.ContentTypeID, record.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "content record not found",
				goerr.V("type_id", record.ContentTypeID), goerr.V("id", record.ID))
		}
		return nil, goerr.Wrap(err, "failed to get content record", goerr.V("id", record.ID))
	}

	var existing contentRecordDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal content record", goerr.V("id", record.ID))
	}

	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = time.Now().UTC()

	updated := recordToDocument(record)
	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update content record", goerr.V("id", record.ID))
	}

	return recordToModel(updated), nil
}

func (r *contentRepository) Delete(ctx context.Context, typeID types.ContentTypeID, id types.RecordID) error {
	docRef := r.client.Collection(r.collection()).Doc(r.docID(typeID, id))

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "content record not found",
				goerr.V("type_id", typeID), goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get content record", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete content record", goerr.V("id", id))
	}

	return nil
}
