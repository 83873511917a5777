package interfaces

import (
	"context"

	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
)

// ActivityRepository defines the interface for activity log persistence
type ActivityRepository interface {
	// Record appends an activity entry
	Record(ctx context.Context, entry *model.ActivityEntry) error

	// ListByRecord returns activity entries for a record, newest first,
	// up to limit entries
	ListByRecord(ctx context.Context, typeID types.ContentTypeID, recordID types.RecordID, limit int) ([]*model.ActivityEntry, error)
}
