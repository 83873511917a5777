package types

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// uuidPattern matches the canonical lowercase UUID textual form (8-4-4-4-12)
var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ContentTypeID is a UUID-based identifier for ContentType
type ContentTypeID string

// NewContentTypeID generates a new UUID v4 ContentTypeID
func NewContentTypeID() ContentTypeID {
	return ContentTypeID(uuid.New().String())
}

// Validate checks if the ContentTypeID is in canonical UUID form
func (t ContentTypeID) Validate() error {
	if t == "" {
		return goerr.New("content type ID cannot be empty")
	}
	if !uuidPattern.MatchString(string(t)) {
		return goerr.New("content type ID must be a canonical UUID", goerr.V("id", t))
	}
	return nil
}

// String returns the string representation of ContentTypeID
func (t ContentTypeID) String() string {
	return string(t)
}

// RecordID is a UUID-based identifier for ContentRecord
type RecordID string

// NewRecordID generates a new UUID v4 RecordID
func NewRecordID() RecordID {
	return RecordID(uuid.New().String())
}

// Validate checks if the RecordID is in canonical UUID form
func (r RecordID) Validate() error {
	if r == "" {
		return goerr.New("record ID cannot be empty")
	}
	if !uuidPattern.MatchString(string(r)) {
		return goerr.New("record ID must be a canonical UUID", goerr.V("id", r))
	}
	return nil
}

// String returns the string representation of RecordID
func (r RecordID) String() string {
	return string(r)
}
