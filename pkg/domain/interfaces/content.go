package interfaces

import (
	"context"

	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
)

// ContentRepository defines the interface for ContentRecord data access
type ContentRepository interface {
	// Create persists a new content record. If the ID is empty a new one is
	// assigned.
	Create(ctx context.Context, record *model.ContentRecord) (*model.ContentRecord, error)

	// Get retrieves a content record by ID within a content type
	Get(ctx context.Context, typeID types.ContentTypeID, id types.RecordID) (*model.ContentRecord, error)

	// List returns all content records of a content type
	List(ctx context.Context, typeID types.ContentTypeID) ([]*model.ContentRecord, error)

	// Update replaces the data of an existing record
	Update(ctx context.Context, record *model.ContentRecord) (*model.ContentRecord, error)

	// Delete removes a content record
	Delete(ctx context.Context, typeID types.ContentTypeID, id types.RecordID) error
}
