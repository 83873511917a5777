package model_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
)

// failedField extracts the field name attached to a validation error
func failedField(t *testing.T, err error) string {
	t.Helper()

	var ge *goerr.Error
	gt.True(t, errors.As(err, &ge))
	name, ok := ge.Values()[model.FieldNameKey].(string)
	gt.True(t, ok)
	return name
}

func TestSchemaValidator_RequiredAndOptional(t *testing.T) {
	schema := &model.ContentType{
		Name: "article",
		Fields: []model.FieldDefinition{
			{Name: "title", Kind: types.FieldKindText},
			{Name: "views", Kind: types.FieldKindNumber, Optional: true},
		},
	}
	v := model.NewSchemaValidator(schema)

	t.Run("optional field may be absent", func(t *testing.T) {
		record, err := v.Validate(map[string]any{"title": "Hello"})
		gt.NoError(t, err).Required()
		gt.Value(t, record["title"]).Equal("Hello")
		_, hasViews := record["views"]
		gt.False(t, hasViews)
	})

	t.Run("optional field with null is skipped", func(t *testing.T) {
		record, err := v.Validate(map[string]any{"title": "Hello", "views": nil})
		gt.NoError(t, err).Required()
		_, hasViews := record["views"]
		gt.False(t, hasViews)
	})

	t.Run("missing required field fails", func(t *testing.T) {
		_, err := v.Validate(map[string]any{"views": 3})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrMissingRequired))
		gt.Value(t, failedField(t, err)).Equal("title")
	})

	t.Run("null required field fails", func(t *testing.T) {
		_, err := v.Validate(map[string]any{"title": nil})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrMissingRequired))
	})

	t.Run("wrong type beats missing", func(t *testing.T) {
		// A present-but-mistyped value is a type failure, not a missing field
		_, err := v.Validate(map[string]any{"title": 42})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrWrongType))
		gt.Value(t, failedField(t, err)).Equal("title")
	})

	t.Run("undeclared keys are dropped silently", func(t *testing.T) {
		record, err := v.Validate(map[string]any{"title": "Hello", "rogue": "value"})
		gt.NoError(t, err).Required()
		_, hasRogue := record["rogue"]
		gt.False(t, hasRogue)
		gt.Value(t, len(record)).Equal(1)
	})
}

func TestSchemaValidator_FirstFailureWins(t *testing.T) {
	schema := &model.ContentType{
		Name: "pair",
		Fields: []model.FieldDefinition{
			{Name: "alpha", Kind: types.FieldKindText},
			{Name: "beta", Kind: types.FieldKindNumber},
		},
	}

	// Both fields are invalid; the failure must name the first in schema order
	_, err := model.NewSchemaValidator(schema).Validate(map[string]any{
		"alpha": 1,
		"beta":  "nope",
	})
	gt.Error(t, err)
	gt.Value(t, failedField(t, err)).Equal("alpha")
}

func TestSchemaValidator_Kinds(t *testing.T) {
	t.Run("number accepts numeric types", func(t *testing.T) {
		schema := &model.ContentType{
			Name:   "counter",
			Fields: []model.FieldDefinition{{Name: "n", Kind: types.FieldKindNumber}},
		}
		v := model.NewSchemaValidator(schema)

		for _, value := range []any{float64(1.5), int(2), int64(3), int32(4)} {
			record, err := v.Validate(map[string]any{"n": value})
			gt.NoError(t, err).Required()
			gt.Value(t, record["n"]).Equal(value)
		}

		_, err := v.Validate(map[string]any{"n": "12"})
		gt.True(t, errors.Is(err, model.ErrWrongType))
	})

	t.Run("price shares number semantics", func(t *testing.T) {
		schema := &model.ContentType{
			Name:   "product",
			Fields: []model.FieldDefinition{{Name: "price", Kind: types.FieldKindPrice}},
		}
		v := model.NewSchemaValidator(schema)

		record, err := v.Validate(map[string]any{"price": 19.99})
		gt.NoError(t, err).Required()
		gt.Value(t, record["price"]).Equal(19.99)

		_, err = v.Validate(map[string]any{"price": "19.99"})
		gt.True(t, errors.Is(err, model.ErrWrongType))
	})

	t.Run("boolean", func(t *testing.T) {
		schema := &model.ContentType{
			Name:   "flags",
			Fields: []model.FieldDefinition{{Name: "published", Kind: types.FieldKindBoolean}},
		}
		v := model.NewSchemaValidator(schema)

		record, err := v.Validate(map[string]any{"published": true})
		gt.NoError(t, err).Required()
		gt.Value(t, record["published"]).Equal(true)

		_, err = v.Validate(map[string]any{"published": "true"})
		gt.True(t, errors.Is(err, model.ErrWrongType))
	})

	t.Run("relation passes any string without existence check", func(t *testing.T) {
		schema := &model.ContentType{
			Name: "comment",
			Fields: []model.FieldDefinition{
				{Name: "author", Kind: types.FieldKindRelation, RelationTarget: types.NewContentTypeID()},
			},
		}
		v := model.NewSchemaValidator(schema)

		record, err := v.Validate(map[string]any{"author": "no-such-record"})
		gt.NoError(t, err).Required()
		gt.Value(t, record["author"]).Equal("no-such-record")

		_, err = v.Validate(map[string]any{"author": 7})
		gt.True(t, errors.Is(err, model.ErrWrongType))
	})

	t.Run("unknown kind fails closed", func(t *testing.T) {
		schema := &model.ContentType{
			Name:   "broken",
			Fields: []model.FieldDefinition{{Name: "x", Kind: types.FieldKind("geo")}},
		}
		_, err := model.NewSchemaValidator(schema).Validate(map[string]any{"x": "anything"})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrInvalidFieldKind))
	})
}

func TestSchemaValidator_Date(t *testing.T) {
	schema := &model.ContentType{
		Name:   "post",
		Fields: []model.FieldDefinition{{Name: "publishedDate", Kind: types.FieldKindDate}},
	}
	v := model.NewSchemaValidator(schema)

	t.Run("calendar date renders as midnight UTC", func(t *testing.T) {
		record, err := v.Validate(map[string]any{"publishedDate": "2024-06-01"})
		gt.NoError(t, err).Required()
		gt.Value(t, record["publishedDate"]).Equal("2024-06-01T00:00:00.000Z")
	})

	t.Run("RFC3339 with offset converts to UTC", func(t *testing.T) {
		record, err := v.Validate(map[string]any{"publishedDate": "2024-06-01T12:30:00+09:00"})
		gt.NoError(t, err).Required()
		gt.Value(t, record["publishedDate"]).Equal("2024-06-01T03:30:00.000Z")
	})

	t.Run("time.Time value", func(t *testing.T) {
		record, err := v.Validate(map[string]any{
			"publishedDate": time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		})
		gt.NoError(t, err).Required()
		gt.Value(t, record["publishedDate"]).Equal("2024-06-01T10:00:00.000Z")
	})

	t.Run("unparseable string fails", func(t *testing.T) {
		_, err := v.Validate(map[string]any{"publishedDate": "yesterday"})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrInvalidDate))
		gt.Value(t, failedField(t, err)).Equal("publishedDate")
	})

	t.Run("non-string non-time fails", func(t *testing.T) {
		_, err := v.Validate(map[string]any{"publishedDate": 20240601})
		gt.True(t, errors.Is(err, model.ErrWrongType))
	})
}

func TestSchemaValidator_Enum(t *testing.T) {
	schema := &model.ContentType{
		Name: "article",
		Fields: []model.FieldDefinition{
			{Name: "status", Kind: types.FieldKindEnum, EnumOptions: []string{"draft", "published"}},
		},
	}
	v := model.NewSchemaValidator(schema)

	t.Run("member value passes", func(t *testing.T) {
		record, err := v.Validate(map[string]any{"status": "draft"})
		gt.NoError(t, err).Required()
		gt.Value(t, record["status"]).Equal("draft")
	})

	t.Run("non-member fails with field name", func(t *testing.T) {
		_, err := v.Validate(map[string]any{"status": "archived"})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrInvalidEnumValue))
		gt.Value(t, failedField(t, err)).Equal("status")
	})

	t.Run("membership is case-sensitive", func(t *testing.T) {
		colors := &model.ContentType{
			Name: "palette",
			Fields: []model.FieldDefinition{
				{Name: "color", Kind: types.FieldKindEnum, EnumOptions: []string{"Red", "Green", "Blue"}},
			},
		}
		_, err := model.NewSchemaValidator(colors).Validate(map[string]any{"color": "red"})
		gt.True(t, errors.Is(err, model.ErrInvalidEnumValue))
	})

	t.Run("non-string fails as wrong type", func(t *testing.T) {
		_, err := v.Validate(map[string]any{"status": 1})
		gt.True(t, errors.Is(err, model.ErrWrongType))
	})
}

// base64 text lengths around the 2 MiB decoded-size estimate ceil(len*3/4)
const (
	mediaLenAtLimit  = 2796202 // estimate = 2,097,152 bytes, exactly the limit
	mediaLenOverOne  = 2796204 // estimate = 2,097,153 bytes, one over
	mediaLenThreeMiB = 4194304 // estimate = 3 MiB
)

func TestSchemaValidator_Media(t *testing.T) {
	schema := &model.ContentType{
		Name:   "asset",
		Fields: []model.FieldDefinition{{Name: "cover", Kind: types.FieldKindMedia}},
	}
	v := model.NewSchemaValidator(schema)

	t.Run("small payload passes and is stored unchanged", func(t *testing.T) {
		payload := "data:image/png;base64,iVBORw0KGgo="
		record, err := v.Validate(map[string]any{"cover": payload})
		gt.NoError(t, err).Required()
		gt.Value(t, record["cover"]).Equal(payload)
	})

	t.Run("payload at the size limit passes", func(t *testing.T) {
		record, err := v.Validate(map[string]any{"cover": strings.Repeat("A", mediaLenAtLimit)})
		gt.NoError(t, err).Required()
		gt.Value(t, len(record["cover"].(string))).Equal(mediaLenAtLimit)
	})

	t.Run("one byte over the limit fails", func(t *testing.T) {
		_, err := v.Validate(map[string]any{"cover": strings.Repeat("A", mediaLenOverOne)})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrMediaTooLarge))
		gt.Value(t, failedField(t, err)).Equal("cover")
	})

	t.Run("three MiB payload fails", func(t *testing.T) {
		_, err := v.Validate(map[string]any{"cover": strings.Repeat("A", mediaLenThreeMiB)})
		gt.True(t, errors.Is(err, model.ErrMediaTooLarge))
	})

	t.Run("data URI prefix is excluded from measurement", func(t *testing.T) {
		// Payload alone is exactly at the limit; the prefix must not push it over
		payload := "data:image/jpeg;base64," + strings.Repeat("A", mediaLenAtLimit)
		record, err := v.Validate(map[string]any{"cover": payload})
		gt.NoError(t, err).Required()
		gt.Value(t, record["cover"]).Equal(payload)
	})

	t.Run("non-string fails", func(t *testing.T) {
		_, err := v.Validate(map[string]any{"cover": 123})
		gt.True(t, errors.Is(err, model.ErrWrongType))
	})
}

func TestSchemaValidator_Idempotence(t *testing.T) {
	schema := &model.ContentType{
		Name: "article",
		Fields: []model.FieldDefinition{
			{Name: "title", Kind: types.FieldKindText},
			{Name: "views", Kind: types.FieldKindNumber},
			{Name: "published", Kind: types.FieldKindBoolean},
			{Name: "publishedDate", Kind: types.FieldKindDate},
			{Name: "status", Kind: types.FieldKindEnum, EnumOptions: []string{"draft", "published"}},
			{Name: "cover", Kind: types.FieldKindMedia, Optional: true},
		},
	}
	v := model.NewSchemaValidator(schema)

	payload := map[string]any{
		"title":         "Hello",
		"views":         float64(12),
		"published":     true,
		"publishedDate": "2024-06-01",
		"status":        "draft",
		"cover":         "data:image/png;base64,iVBORw0KGgo=",
	}

	first, err := v.Validate(payload)
	gt.NoError(t, err).Required()

	second, err := v.Validate(first)
	gt.NoError(t, err).Required()
	gt.Value(t, second).Equal(first)
}

func TestValidateUniform(t *testing.T) {
	t.Run("applies one kind to every key", func(t *testing.T) {
		record, err := model.ValidateUniform(types.FieldKindText, map[string]any{
			"a": "one",
			"b": "two",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, record["a"]).Equal("one")
		gt.Value(t, record["b"]).Equal("two")
	})

	t.Run("any mismatched key fails", func(t *testing.T) {
		_, err := model.ValidateUniform(types.FieldKindText, map[string]any{
			"a": "one",
			"b": 2,
		})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrWrongType))
		gt.Value(t, failedField(t, err)).Equal("b")
	})

	t.Run("null values are always rejected", func(t *testing.T) {
		_, err := model.ValidateUniform(types.FieldKindText, map[string]any{"a": nil})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrMissingRequired))
	})

	t.Run("failure reporting is deterministic in lexical order", func(t *testing.T) {
		_, err := model.ValidateUniform(types.FieldKindNumber, map[string]any{
			"zz": "bad",
			"aa": "also bad",
		})
		gt.Error(t, err)
		gt.Value(t, failedField(t, err)).Equal("aa")
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		_, err := model.ValidateUniform(types.FieldKind("geo"), map[string]any{"a": "x"})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrInvalidFieldKind))
	})

	t.Run("empty payload is valid", func(t *testing.T) {
		record, err := model.ValidateUniform(types.FieldKindText, map[string]any{})
		gt.NoError(t, err).Required()
		gt.Value(t, len(record)).Equal(0)
	})
}

func TestSchemaValidator_ResultGuarantees(t *testing.T) {
	schema := &model.ContentType{
		Name: "article",
		Fields: []model.FieldDefinition{
			{Name: "title", Kind: types.FieldKindText},
			{Name: "subtitle", Kind: types.FieldKindText, Optional: true},
		},
	}

	record, err := model.NewSchemaValidator(schema).Validate(map[string]any{
		"title":    "Hello",
		"subtitle": "World",
		"extra":    42,
	})
	gt.NoError(t, err).Required()

	// Every required field is present, and nothing undeclared leaks through
	for key := range record {
		_, declared := schema.Field(key)
		gt.True(t, declared)
	}
	gt.Value(t, record["title"]).Equal("Hello")
	gt.Value(t, record["subtitle"]).Equal("World")
}
