package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/headwind-cms/headwind/pkg/domain/interfaces"
	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
	"github.com/headwind-cms/headwind/pkg/repository/firestore"
	"github.com/headwind-cms/headwind/pkg/repository/memory"
)

// ContentTypeUseCase manages content-type schema definitions
type ContentTypeUseCase struct {
	repo interfaces.Repository
}

func NewContentTypeUseCase(repo interfaces.Repository) *ContentTypeUseCase {
	return &ContentTypeUseCase{
		repo: repo,
	}
}

// isNotFound reports whether the error is a not-found from any backend
func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}

func isAlreadyExists(err error) bool {
	return errors.Is(err, memory.ErrAlreadyExists) || errors.Is(err, firestore.ErrAlreadyExists)
}

// Create validates and persists a new content type definition
func (uc *ContentTypeUseCase) Create(ctx context.Context, name string, fields []model.FieldDefinition) (*model.ContentType, error) {
	ct := &model.ContentType{
		Name:   name,
		Fields: fields,
	}
	if err := ct.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidSchema, err.Error(), goerr.V("name", name))
	}

	created, err := uc.repo.ContentType().Create(ctx, ct)
	if err != nil {
		if isAlreadyExists(err) {
			return nil, goerr.Wrap(ErrDuplicateName, "content type name already in use", goerr.V("name", name))
		}
		return nil, goerr.Wrap(err, "failed to create content type", goerr.V("name", name))
	}

	return created, nil
}

// Get retrieves a content type by ID
func (uc *ContentTypeUseCase) Get(ctx context.Context, id types.ContentTypeID) (*model.ContentType, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidID, err.Error(), goerr.V(ContentTypeIDKey, id))
	}

	ct, err := uc.repo.ContentType().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrContentTypeNotFound, "no such content type", goerr.V(ContentTypeIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get content type", goerr.V(ContentTypeIDKey, id))
	}

	return ct, nil
}

// List returns all content types
func (uc *ContentTypeUseCase) List(ctx context.Context) ([]*model.ContentType, error) {
	list, err := uc.repo.ContentType().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list content types")
	}
	return list, nil
}

// ReplaceFields replaces a content type's field list wholesale. Existing
// content validated against the old schema is left untouched.
func (uc *ContentTypeUseCase) ReplaceFields(ctx context.Context, id types.ContentTypeID, fields []model.FieldDefinition) (*model.ContentType, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidID, err.Error(), goerr.V(ContentTypeIDKey, id))
	}

	if err := model.ValidateFieldDefinitions(fields); err != nil {
		return nil, goerr.Wrap(ErrInvalidSchema, err.Error(), goerr.V(ContentTypeIDKey, id))
	}

	updated, err := uc.repo.ContentType().ReplaceFields(ctx, id, fields)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrContentTypeNotFound, "no such content type", goerr.V(ContentTypeIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to replace fields", goerr.V(ContentTypeIDKey, id))
	}

	return updated, nil
}

// Delete removes a content type. Content referencing the type is deliberately
// not cascaded.
func (uc *ContentTypeUseCase) Delete(ctx context.Context, id types.ContentTypeID) error {
	if err := id.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidID, err.Error(), goerr.V(ContentTypeIDKey, id))
	}

	if err := uc.repo.ContentType().Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrContentTypeNotFound, "no such content type", goerr.V(ContentTypeIDKey, id))
		}
		return goerr.Wrap(err, "failed to delete content type", goerr.V(ContentTypeIDKey, id))
	}

	return nil
}
