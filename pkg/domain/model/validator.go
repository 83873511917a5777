package model

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/headwind-cms/headwind/pkg/domain/types"
)

// MaxMediaBytes is the maximum decoded size of a media payload (2 MiB)
const MaxMediaBytes = 2 * 1024 * 1024

// isoMillis renders an instant as an ISO-8601 UTC string with milliseconds
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// dateLayouts are the accepted textual date formats, tried in order
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// SchemaValidator normalizes and type-checks payloads against a content
// type's field schema. It holds no mutable state and is safe for concurrent
// use from any number of requests.
type SchemaValidator struct {
	schema *ContentType
}

// NewSchemaValidator creates a new SchemaValidator with the given schema
func NewSchemaValidator(schema *ContentType) *SchemaValidator {
	return &SchemaValidator{
		schema: schema,
	}
}

// Validate runs the payload through the schema, field by field in schema
// order, and returns the normalized record. Payload keys not declared by the
// schema are dropped. Validation stops at the first failing field.
func (v *SchemaValidator) Validate(payload map[string]any) (ValidatedRecord, error) {
	record := make(ValidatedRecord, len(v.schema.Fields))

	for i := range v.schema.Fields {
		field := &v.schema.Fields[i]

		value, ok := payload[field.Name]
		if !ok || value == nil {
			if field.Optional {
				continue
			}
			return nil, goerr.Wrap(ErrMissingRequired, "required field not provided",
				goerr.V(FieldNameKey, field.Name))
		}

		normalized, err := normalizeValue(field, value)
		if err != nil {
			return nil, goerr.Wrap(err, "field validation failed",
				goerr.V(FieldNameKey, field.Name))
		}

		record[field.Name] = normalized
	}

	return record, nil
}

// ValidateUniform checks every key of the payload against a single field
// kind. Unlike schema validation, null values are always rejected and there
// are no optional keys. Keys are checked in lexical order so the reported
// failure is deterministic.
func ValidateUniform(kind types.FieldKind, payload map[string]any) (ValidatedRecord, error) {
	if err := kind.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidFieldKind, "cannot validate with unknown kind",
			goerr.V(ExpectedKindKey, kind))
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	record := make(ValidatedRecord, len(payload))
	for _, key := range keys {
		value := payload[key]
		if value == nil {
			return nil, goerr.Wrap(ErrMissingRequired, "null value is not allowed",
				goerr.V(FieldNameKey, key))
		}

		field := FieldDefinition{Name: key, Kind: kind}
		normalized, err := normalizeValue(&field, value)
		if err != nil {
			return nil, goerr.Wrap(err, "field validation failed",
				goerr.V(FieldNameKey, key))
		}

		record[key] = normalized
	}

	return record, nil
}

// normalizeValue dispatches over the field kind. Kinds outside the closed set
// fail closed: a schema with an unrecognized kind can never let a value pass
// unvalidated.
func normalizeValue(field *FieldDefinition, value any) (any, error) {
	switch field.Kind {
	case types.FieldKindNumber, types.FieldKindPrice:
		return normalizeNumber(field, value)
	case types.FieldKindText:
		return normalizeString(field, value)
	case types.FieldKindBoolean:
		return normalizeBoolean(field, value)
	case types.FieldKindDate:
		return normalizeDate(field, value)
	case types.FieldKindRelation:
		return normalizeRelation(field, value)
	case types.FieldKindMedia:
		return normalizeMedia(field, value)
	case types.FieldKindEnum:
		return normalizeEnum(field, value)
	default:
		return nil, goerr.Wrap(ErrInvalidFieldKind, "unsupported field kind",
			goerr.V(ExpectedKindKey, field.Kind))
	}
}

// normalizeNumber accepts any numeric runtime type and passes it through.
// Price fields share number semantics.
func normalizeNumber(field *FieldDefinition, value any) (any, error) {
	switch value.(type) {
	case float64, float32, int, int64, int32:
		return value, nil
	default:
		return nil, goerr.Wrap(ErrWrongType, "value must be number",
			goerr.V(ExpectedKindKey, field.Kind),
			goerr.V(ActualTypeKey, fmt.Sprintf("%T", value)))
	}
}

func normalizeString(field *FieldDefinition, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, goerr.Wrap(ErrWrongType, "value must be string",
			goerr.V(ExpectedKindKey, field.Kind),
			goerr.V(ActualTypeKey, fmt.Sprintf("%T", value)))
	}
	return s, nil
}

func normalizeBoolean(field *FieldDefinition, value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, goerr.Wrap(ErrWrongType, "value must be boolean",
			goerr.V(ExpectedKindKey, field.Kind),
			goerr.V(ActualTypeKey, fmt.Sprintf("%T", value)))
	}
	return b, nil
}

// normalizeDate parses string or time.Time values to an absolute instant and
// re-renders it as an ISO-8601 UTC string with millisecond precision. The
// result depends only on the input value, never on wall-clock time.
func normalizeDate(field *FieldDefinition, value any) (any, error) {
	switch val := value.(type) {
	case time.Time:
		return val.UTC().Format(isoMillis), nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				return t.UTC().Format(isoMillis), nil
			}
		}
		return nil, goerr.Wrap(ErrInvalidDate, "date value cannot be parsed",
			goerr.V(FieldNameKey, field.Name),
			goerr.V("value", val))
	default:
		return nil, goerr.Wrap(ErrWrongType, "value must be date string or time.Time",
			goerr.V(ExpectedKindKey, field.Kind),
			goerr.V(ActualTypeKey, fmt.Sprintf("%T", value)))
	}
}

// normalizeRelation accepts the ID of a related record. Existence of the
// referenced record is not checked here.
func normalizeRelation(field *FieldDefinition, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, goerr.Wrap(ErrWrongType, "value must be string (related record ID)",
			goerr.V(ExpectedKindKey, field.Kind),
			goerr.V(ActualTypeKey, fmt.Sprintf("%T", value)))
	}
	return s, nil
}

// normalizeMedia accepts a base64 payload, raw or as a data URI. The size
// check measures the stripped base64 text; the stored value is the original
// string, prefix included.
func normalizeMedia(field *FieldDefinition, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, goerr.Wrap(ErrWrongType, "value must be base64 string",
			goerr.V(ExpectedKindKey, field.Kind),
			goerr.V(ActualTypeKey, fmt.Sprintf("%T", value)))
	}

	size := estimateDecodedSize(stripDataURIPrefix(s))
	if size > MaxMediaBytes {
		return nil, goerr.Wrap(ErrMediaTooLarge, "media payload is too large",
			goerr.V(FieldNameKey, field.Name),
			goerr.V(MediaSizeKey, size),
			goerr.V(MediaLimitKey, MaxMediaBytes))
	}

	return s, nil
}

func normalizeEnum(field *FieldDefinition, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, goerr.Wrap(ErrWrongType, "value must be string (enum option)",
			goerr.V(ExpectedKindKey, field.Kind),
			goerr.V(ActualTypeKey, fmt.Sprintf("%T", value)))
	}

	for _, opt := range field.EnumOptions {
		if opt == s {
			return s, nil
		}
	}

	return nil, goerr.Wrap(ErrInvalidEnumValue, "enum value not in allowed options",
		goerr.V(FieldNameKey, field.Name),
		goerr.V(EnumValueKey, s))
}

// stripDataURIPrefix removes a leading "data:<mime>;base64," marker so only
// the payload itself is measured
func stripDataURIPrefix(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if idx := strings.Index(s, ";base64,"); idx >= 0 {
		return s[idx+len(";base64,"):]
	}
	return s
}

// estimateDecodedSize returns ceil(len*3/4), the decoded byte size of a
// base64 text without actually decoding it
func estimateDecodedSize(b64 string) int {
	return (len(b64)*3 + 3) / 4
}
