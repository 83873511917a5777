package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
	"github.com/headwind-cms/headwind/pkg/repository/memory"
	"github.com/headwind-cms/headwind/pkg/usecase"
)

func articleFields() []model.FieldDefinition {
	return []model.FieldDefinition{
		{Name: "title", Kind: types.FieldKindText},
		{Name: "views", Kind: types.FieldKindNumber, Optional: true},
		{Name: "status", Kind: types.FieldKindEnum, EnumOptions: []string{"draft", "published"}},
	}
}

func TestContentTypeUseCase_Create(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := context.Background()

	t.Run("creates a valid content type", func(t *testing.T) {
		created, err := uc.ContentType.Create(ctx, "article", articleFields())
		gt.NoError(t, err).Required()
		gt.NoError(t, created.ID.Validate())
		gt.Value(t, created.Name).Equal("article")
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		_, err := uc.ContentType.Create(ctx, "article", articleFields())
		gt.Error(t, err)
		gt.True(t, errors.Is(err, usecase.ErrDuplicateName))
	})

	t.Run("rejects invalid schema", func(t *testing.T) {
		_, err := uc.ContentType.Create(ctx, "broken", []model.FieldDefinition{
			{Name: "status", Kind: types.FieldKindEnum},
		})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, usecase.ErrInvalidSchema))
	})

	t.Run("rejects duplicate field names", func(t *testing.T) {
		_, err := uc.ContentType.Create(ctx, "dup", []model.FieldDefinition{
			{Name: "x", Kind: types.FieldKindText},
			{Name: "x", Kind: types.FieldKindNumber},
		})
		gt.True(t, errors.Is(err, usecase.ErrInvalidSchema))
	})
}

func TestContentTypeUseCase_GetAndList(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := context.Background()

	created, err := uc.ContentType.Create(ctx, "article", articleFields())
	gt.NoError(t, err).Required()

	t.Run("Get returns the content type", func(t *testing.T) {
		got, err := uc.ContentType.Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("article")
	})

	t.Run("Get with malformed ID fails fast", func(t *testing.T) {
		_, err := uc.ContentType.Get(ctx, types.ContentTypeID("not-a-uuid"))
		gt.True(t, errors.Is(err, usecase.ErrInvalidID))
	})

	t.Run("Get with unknown ID is not found", func(t *testing.T) {
		_, err := uc.ContentType.Get(ctx, types.NewContentTypeID())
		gt.True(t, errors.Is(err, usecase.ErrContentTypeNotFound))
	})

	t.Run("List includes the content type", func(t *testing.T) {
		list, err := uc.ContentType.List(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, len(list)).Equal(1)
	})
}

func TestContentTypeUseCase_ReplaceFields(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := context.Background()

	created, err := uc.ContentType.Create(ctx, "article", articleFields())
	gt.NoError(t, err).Required()

	t.Run("replaces the whole field list", func(t *testing.T) {
		newFields := []model.FieldDefinition{
			{Name: "headline", Kind: types.FieldKindText},
		}
		updated, err := uc.ContentType.ReplaceFields(ctx, created.ID, newFields)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Fields).Equal(newFields)
	})

	t.Run("rejects invalid replacement", func(t *testing.T) {
		_, err := uc.ContentType.ReplaceFields(ctx, created.ID, []model.FieldDefinition{
			{Name: "", Kind: types.FieldKindText},
		})
		gt.True(t, errors.Is(err, usecase.ErrInvalidSchema))
	})

	t.Run("unknown ID is not found", func(t *testing.T) {
		_, err := uc.ContentType.ReplaceFields(ctx, types.NewContentTypeID(), nil)
		gt.True(t, errors.Is(err, usecase.ErrContentTypeNotFound))
	})
}

func TestContentTypeUseCase_Delete(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := context.Background()

	created, err := uc.ContentType.Create(ctx, "article", articleFields())
	gt.NoError(t, err).Required()

	gt.NoError(t, uc.ContentType.Delete(ctx, created.ID))

	_, err = uc.ContentType.Get(ctx, created.ID)
	gt.True(t, errors.Is(err, usecase.ErrContentTypeNotFound))

	err = uc.ContentType.Delete(ctx, created.ID)
	gt.True(t, errors.Is(err, usecase.ErrContentTypeNotFound))
}
