package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/headwind-cms/headwind/pkg/domain/types"
)

// ActivityAction represents the kind of content operation recorded
type ActivityAction string

const (
	ActivityActionCreate ActivityAction = "create"
	ActivityActionUpdate ActivityAction = "update"
	ActivityActionDelete ActivityAction = "delete"
)

// ActivityID is a UUID-based identifier for ActivityEntry
type ActivityID string

// NewActivityID generates a new UUID v4 ActivityID
func NewActivityID() ActivityID {
	return ActivityID(uuid.New().String())
}

// ActivityEntry records one content operation for audit purposes
type ActivityEntry struct {
	ID            ActivityID
	ContentTypeID types.ContentTypeID
	RecordID      types.RecordID
	Action        ActivityAction
	CreatedAt     time.Time
}
