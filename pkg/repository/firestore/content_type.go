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

type fieldDefinitionDocument struct {
	Name           string   `firestore:"name"`
	Kind           string   `firestore:"kind"`
	Optional       bool     `firestore:"optional"`
	RelationTarget string   `firestore:"relation_target,omitempty"`
	EnumOptions    []string `firestore:"enum_options,omitempty"`
}

type contentTypeDocument struct {
	ID        string                    `firestore:"id"`
	Name      string                    `firestore:"name"`
	Fields    []fieldDefinitionDocument `firestore:"fields"`
	CreatedAt time.Time                 `firestore:"created_at"`
	UpdatedAt time.Time                 `firestore:"updated_at"`
}

type contentTypeRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newContentTypeRepository(client *firestore.Client) *contentTypeRepository {
	return &contentTypeRepository{
		client: client,
	}
}

func (r *contentTypeRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_content_types"
	}
	return "content_types"
}

func contentTypeToDocument(ct *model.ContentType) *contentTypeDocument {
	doc := &contentTypeDocument{
		ID:        string(ct.ID),
		Name:      ct.Name,
		Fields:    make([]fieldDefinitionDocument, len(ct.Fields)),
		CreatedAt: ct.CreatedAt,
		UpdatedAt: ct.UpdatedAt,
	}

	for i, f := range ct.Fields {
		doc.Fields[i] = fieldDefinitionDocument{
			Name:           f.Name,
			Kind:           string(f.Kind),
			Optional:       f.Optional,
			RelationTarget: string(f.RelationTarget),
			EnumOptions:    f.EnumOptions,
		}
	}

	return doc
}

func contentTypeToModel(doc *contentTypeDocument) *model.ContentType {
	ct := &model.ContentType{
		ID:        types.ContentTypeID(doc.ID),
		Name:      doc.Name,
		Fields:    make([]model.FieldDefinition, len(doc.Fields)),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}

	for i, f := range doc.Fields {
		ct.Fields[i] = model.FieldDefinition{
			Name:           f.Name,
			Kind:           types.FieldKind(f.Kind),
			Optional:       f.Optional,
			RelationTarget: types.ContentTypeID(f.RelationTarget),
			EnumOptions:    f.EnumOptions,
		}
	}

	return ct
}

func (r *contentTypeRepository) Create(ctx context.Context, ct *model.ContentType) (*model.ContentType, error) {
	existing := r.client.Collection(r.collection()).Where("name", "==", ct.Name).Limit(1).Documents(ctx)
	defer existing.Stop()
	if _, err := existing.Next(); err != iterator.Done {
		if err != nil {
			return nil, goerr.Wrap(err, "failed to check content type name", goerr.V("name", ct.Name))
		}
		return nil, goerr.Wrap(ErrAlreadyExists, "content type name already in use", goerr.V("name", ct.Name))
	}

	now := time.Now().UTC()
	if ct.ID == "" {
		ct.ID = types.NewContentTypeID()
	}
	ct.CreatedAt = now
	ct.UpdatedAt = now

	doc := contentTypeToDocument(ct)

	docRef := r.client.Collection(r.collection()).Doc(string(ct.ID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create content type", goerr.V("id", ct.ID))
	}

	return contentTypeToModel(doc), nil
}

func (r *contentTypeRepository) Get(ctx context.Context, id types.ContentTypeID) (*model.ContentType, error) {
	docRef := r.client.Collection(r.collection()).Doc(string(id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "content type not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get content type", goerr.V("id", id))
	}

	var ctDoc contentTypeDocument
	if err := doc.DataTo(&ctDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal content type", goerr.V("id", id))
	}

	return contentTypeToModel(&ctDoc), nil
}

func (r *contentTypeRepository) GetByName(ctx context.Context, name string) (*model.ContentType, error) {
	iter := r.client.Collection(r.collection()).Where("name", "==", name).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "content type not found", goerr.V("name", name))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query content type", goerr.V("name", name))
	}

	var ctDoc contentTypeDocument
	if err := doc.DataTo(&ctDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal content type", goerr.V("name", name))
	}

	return contentTypeToModel(&ctDoc), nil
}

func (r *contentTypeRepository) List(ctx context.Context) ([]*model.ContentType, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var list []*model.ContentType
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate content types")
		}

		var ctDoc contentTypeDocument
		if err := doc.DataTo(&ctDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal content type")
		}

		list = append(list, contentTypeToModel(&ctDoc))
	}

	return list, nil
}

func (r *contentTypeRepository) ReplaceFields(ctx context.Context, id types.ContentTypeID, fields []model.FieldDefinition) (*model.ContentType, error) {
	docRef := r.client.Collection(r.collection()).Doc(string(id))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "content type not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get content type", goerr.V("id", id))
	}

	var existing contentTypeDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal content type", goerr.V("id", id))
	}

	ct := contentTypeToModel(&existing)
	ct.Fields = fields
	ct.UpdatedAt = time.Now().UTC()

	updated := contentTypeToDocument(ct)
	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to replace content type fields", goerr.V("id", id))
	}

	return contentTypeToModel(updated), nil
}

func (r *contentTypeRepository) Delete(ctx context.Context, id types.ContentTypeID) error {
	docRef := r.client.Collection(r.collection()).Doc(string(id))

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "content type not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get content type", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete content type", goerr.V("id", id))
	}

	return nil
}
