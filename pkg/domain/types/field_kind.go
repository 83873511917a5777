package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// FieldKind represents the kind of a content-type field
type FieldKind string

const (
	FieldKindNumber   FieldKind = "number"
	FieldKindText     FieldKind = "text"
	FieldKindDate     FieldKind = "date"
	FieldKindBoolean  FieldKind = "boolean"
	FieldKindRelation FieldKind = "relation"
	FieldKindMedia    FieldKind = "media"
	FieldKindEnum     FieldKind = "enum"
	FieldKindPrice    FieldKind = "price"
)

// AllFieldKinds returns all valid field kinds
func AllFieldKinds() []FieldKind {
	return []FieldKind{
		FieldKindNumber,
		FieldKindText,
		FieldKindDate,
		FieldKindBoolean,
		FieldKindRelation,
		FieldKindMedia,
		FieldKindEnum,
		FieldKindPrice,
	}
}

// IsValid checks if the field kind belongs to the closed kind set
func (k FieldKind) IsValid() bool {
	switch k {
	case FieldKindNumber,
		FieldKindText,
		FieldKindDate,
		FieldKindBoolean,
		FieldKindRelation,
		FieldKindMedia,
		FieldKindEnum,
		FieldKindPrice:
		return true
	default:
		return false
	}
}

// Validate returns an error if the field kind is not recognized
func (k FieldKind) Validate() error {
	if k == "" {
		return goerr.New("field kind cannot be empty")
	}
	if !k.IsValid() {
		return goerr.New("unknown field kind", goerr.V("kind", k))
	}
	return nil
}

// String returns the string representation of the field kind
func (k FieldKind) String() string {
	return string(k)
}
