package interfaces

import (
	"context"

	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
)

// ContentTypeRepository defines the interface for ContentType data access
type ContentTypeRepository interface {
	// Create persists a new content type. If the ID is empty a new one is
	// assigned.
	Create(ctx context.Context, ct *model.ContentType) (*model.ContentType, error)

	// Get retrieves a content type by ID
	Get(ctx context.Context, id types.ContentTypeID) (*model.ContentType, error)

	// GetByName retrieves a content type by its unique name
	GetByName(ctx context.Context, name string) (*model.ContentType, error)

	// List returns all content types
	List(ctx context.Context) ([]*model.ContentType, error)

	// ReplaceFields replaces the whole field list of an existing content type.
	// Partial field edits are not supported.
	ReplaceFields(ctx context.Context, id types.ContentTypeID, fields []model.FieldDefinition) (*model.ContentType, error)

	// Delete removes a content type. Content referencing it is not touched.
	Delete(ctx context.Context, id types.ContentTypeID) error
}
