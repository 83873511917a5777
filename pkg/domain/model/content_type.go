package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/headwind-cms/headwind/pkg/domain/types"
)

// FieldDefinition defines one field of a content type's schema
type FieldDefinition struct {
	Name           string
	Kind           types.FieldKind
	Optional       bool
	RelationTarget types.ContentTypeID // Only used for relation fields
	EnumOptions    []string            // Only used for enum fields
}

// Validate checks if the FieldDefinition is well-formed
func (f *FieldDefinition) Validate() error {
	if f.Name == "" {
		return goerr.New("field name is required")
	}
	if err := f.Kind.Validate(); err != nil {
		return goerr.Wrap(err, "invalid field kind", goerr.V("name", f.Name))
	}

	if f.Kind == types.FieldKindEnum {
		if len(f.EnumOptions) == 0 {
			return goerr.New("enum field requires at least one option", goerr.V("name", f.Name))
		}
		seen := make(map[string]bool, len(f.EnumOptions))
		for _, opt := range f.EnumOptions {
			if seen[opt] {
				return goerr.New("duplicate enum option", goerr.V("name", f.Name), goerr.V("option", opt))
			}
			seen[opt] = true
		}
	} else if len(f.EnumOptions) > 0 {
		return goerr.New("enum options are only allowed for enum fields",
			goerr.V("name", f.Name), goerr.V("kind", f.Kind))
	}

	if f.Kind != types.FieldKindRelation && f.RelationTarget != "" {
		return goerr.New("relation target is only allowed for relation fields",
			goerr.V("name", f.Name), goerr.V("kind", f.Kind))
	}

	return nil
}

// ContentType represents a user-defined content schema: an ordered list of
// field definitions that content records are validated against
type ContentType struct {
	ID        types.ContentTypeID
	Name      string
	Fields    []FieldDefinition
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks if the ContentType and all its field definitions are valid.
// Field names must be unique within the type.
func (c *ContentType) Validate() error {
	if c.Name == "" {
		return goerr.New("content type name is required")
	}
	if err := ValidateFieldDefinitions(c.Fields); err != nil {
		return goerr.Wrap(err, "invalid field list", goerr.V("content_type", c.Name))
	}
	return nil
}

// ValidateFieldDefinitions checks a field list for per-field validity and
// unique field names
func ValidateFieldDefinitions(fields []FieldDefinition) error {
	names := make(map[string]bool, len(fields))
	for i := range fields {
		if err := fields[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid field definition")
		}
		if names[fields[i].Name] {
			return goerr.New("duplicate field name", goerr.V("field", fields[i].Name))
		}
		names[fields[i].Name] = true
	}
	return nil
}

// Field returns the field definition with the given name, if declared
func (c *ContentType) Field(name string) (*FieldDefinition, bool) {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i], true
		}
	}
	return nil, false
}
