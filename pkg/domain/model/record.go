package model

import (
	"time"

	"github.com/headwind-cms/headwind/pkg/domain/types"
)

// ValidatedRecord is the normalized, type-checked output of running a payload
// through a content type's schema. Keys are field names declared by the schema.
type ValidatedRecord map[string]any

// Clone returns a shallow copy of the record
func (r ValidatedRecord) Clone() ValidatedRecord {
	if r == nil {
		return nil
	}
	copied := make(ValidatedRecord, len(r))
	for k, v := range r {
		copied[k] = v
	}
	return copied
}

// ContentRecord represents a persisted content entry of a content type
type ContentRecord struct {
	ID            types.RecordID
	ContentTypeID types.ContentTypeID
	Data          ValidatedRecord
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
