package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
)

type contentTypeRepository struct {
	mu    sync.RWMutex
	items map[types.ContentTypeID]*model.ContentType
}

func newContentTypeRepository() *contentTypeRepository {
	return &contentTypeRepository{
		items: make(map[types.ContentTypeID]*model.ContentType),
	}
}

// copyContentType creates a deep copy of a content type
func copyContentType(ct *model.ContentType) *model.ContentType {
	copied := &model.ContentType{
		ID:        ct.ID,
		Name:      ct.Name,
		CreatedAt: ct.CreatedAt,
		UpdatedAt: ct.UpdatedAt,
	}

	copied.Fields = make([]model.FieldDefinition, len(ct.Fields))
	for i, f := range ct.Fields {
		copied.Fields[i] = model.FieldDefinition{
			Name:           f.Name,
			Kind:           f.Kind,
			Optional:       f.Optional,
			RelationTarget: f.RelationTarget,
		}
		if len(f.EnumOptions) > 0 {
			copied.Fields[i].EnumOptions = append([]string{}, f.EnumOptions...)
		}
	}

	return copied
}

func (r *contentTypeRepository) Create(ctx context.Context, ct *model.ContentType) (*model.ContentType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Name == ct.Name {
			return nil, goerr.Wrap(ErrAlreadyExists, "content type name already in use", goerr.V("name", ct.Name))
		}
	}

	now := time.Now().UTC()
	created := copyContentType(ct)
	if created.ID == "" {
		created.ID = types.NewContentTypeID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.items[created.ID] = created
	return copyContentType(created), nil
}

func (r *contentTypeRepository) Get(ctx context.Context, id types.ContentTypeID) (*model.ContentType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ct, exists := r.items[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "content type not found", goerr.V("id", id))
	}

	return copyContentType(ct), nil
}

func (r *contentTypeRepository) GetByName(ctx context.Context, name string) (*model.ContentType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ct := range r.items {
		if ct.Name == name {
			return copyContentType(ct), nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "content type not found", goerr.V("name", name))
}

func (r *contentTypeRepository) List(ctx context.Context) ([]*model.ContentType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*model.ContentType, 0, len(r.items))
	for _, ct := range r.items {
		list = append(list, copyContentType(ct))
	}

	return list, nil
}

func (r *contentTypeRepository) ReplaceFields(ctx context.Context, id types.ContentTypeID, fields []model.FieldDefinition) (*model.ContentType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.items[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "content type not found", goerr.V("id", id))
	}

	updated := copyContentType(existing)
	updated.Fields = fields
	updated.UpdatedAt = time.Now().UTC()
	updated = copyContentType(updated)

	r.items[id] = updated
	return copyContentType(updated), nil
}

func (r *contentTypeRepository) Delete(ctx context.Context, id types.ContentTypeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return goerr.Wrap(ErrNotFound, "content type not found", goerr.V("id", id))
	}

	delete(r.items, id)
	return nil
}
