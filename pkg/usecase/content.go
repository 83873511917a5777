package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/headwind-cms/headwind/pkg/domain/interfaces"
	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
	"github.com/headwind-cms/headwind/pkg/utils/async"
)

const defaultActivityLimit = 50

// ContentUseCase manages content records. Every write runs the payload
// through the schema validator of the record's content type before it is
// persisted.
type ContentUseCase struct {
	repo          interfaces.Repository
	activityLimit int
}

func NewContentUseCase(repo interfaces.Repository) *ContentUseCase {
	return &ContentUseCase{
		repo:          repo,
		activityLimit: defaultActivityLimit,
	}
}

// schemaFor loads the content type a payload must validate against
func (uc *ContentUseCase) schemaFor(ctx context.Context, typeID types.ContentTypeID) (*model.ContentType, error) {
	if err := typeID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidID, err.Error(), goerr.V(ContentTypeIDKey, typeID))
	}

	schema, err := uc.repo.ContentType().Get(ctx, typeID)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrContentTypeNotFound, "no such content type", goerr.V(ContentTypeIDKey, typeID))
		}
		return nil, goerr.Wrap(err, "failed to load content type", goerr.V(ContentTypeIDKey, typeID))
	}

	return schema, nil
}

// logActivity records a content operation without blocking the request
func (uc *ContentUseCase) logActivity(ctx context.Context, typeID types.ContentTypeID, recordID types.RecordID, action model.ActivityAction) {
	entry := &model.ActivityEntry{
		ContentTypeID: typeID,
		RecordID:      recordID,
		Action:        action,
	}
	async.Dispatch(ctx, func(ctx context.Context) error {
		return uc.repo.Activity().Record(ctx, entry)
	})
}

// Create validates the payload against the content type's schema and
// persists the normalized record
func (uc *ContentUseCase) Create(ctx context.Context, typeID types.ContentTypeID, payload map[string]any) (*model.ContentRecord, error) {
	schema, err := uc.schemaFor(ctx, typeID)
	if err != nil {
		return nil, err
	}

	data, err := model.NewSchemaValidator(schema).Validate(payload)
	if err != nil {
		return nil, goerr.Wrap(err, "payload validation failed", goerr.V(ContentTypeIDKey, typeID))
	}

	record := &model.ContentRecord{
		ContentTypeID: typeID,
		Data:          data,
	}
	created, err := uc.repo.Content().Create(ctx, record)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create content record", goerr.V(ContentTypeIDKey, typeID))
	}

	uc.logActivity(ctx, typeID, created.ID, model.ActivityActionCreate)
	return created, nil
}

// Get retrieves one content record
func (uc *ContentUseCase) Get(ctx context.Context, typeID types.ContentTypeID, recordID types.RecordID) (*model.ContentRecord, error) {
	if err := typeID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidID, err.Error(), goerr.V(ContentTypeIDKey, typeID))
	}
	if err := recordID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidID, err.Error(), goerr.V(RecordIDKey, recordID))
	}

	record, err := uc.repo.Content().Get(ctx, typeID, recordID)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrRecordNotFound, "no such content record",
				goerr.V(ContentTypeIDKey, typeID), goerr.V(RecordIDKey, recordID))
		}
		return nil, goerr.Wrap(err, "failed to get content record", goerr.V(RecordIDKey, recordID))
	}

	return record, nil
}

// List returns all content records of a type
func (uc *ContentUseCase) List(ctx context.Context, typeID types.ContentTypeID) ([]*model.ContentRecord, error) {
	// The type must exist even when it has no content yet
	if _, err := uc.schemaFor(ctx, typeID); err != nil {
		return nil, err
	}

	records, err := uc.repo.Content().List(ctx, typeID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list content records", goerr.V(ContentTypeIDKey, typeID))
	}

	return records, nil
}

// Update re-validates the payload against the current schema and replaces the
// record's data
func (uc *ContentUseCase) Update(ctx context.Context, typeID types.ContentTypeID, recordID types.RecordID, payload map[string]any) (*model.ContentRecord, error) {
	if err := recordID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidID, err.Error(), goerr.V(RecordIDKey, recordID))
	}

	schema, err := uc.schemaFor(ctx, typeID)
	if err != nil {
		return nil, err
	}

	data, err := model.NewSchemaValidator(schema).Validate(payload)
	if err != nil {
		return nil, goerr.Wrap(err, "payload validation failed",
			goerr.V(ContentTypeIDKey, typeID), goerr.V(RecordIDKey, recordID))
	}

	record := &model.ContentRecord{
		ID:            recordID,
		ContentTypeID: typeID,
		Data:          data,
	}
	updated, err := uc.repo.Content().Update(ctx, record)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrRecordNotFound, "no such content record",
				goerr.V(ContentTypeIDKey, typeID), goerr.V(RecordIDKey, recordID))
		}
		return nil, goerr.Wrap(err, "failed to update content record", goerr.V(RecordIDKey, recordID))
	}

	uc.logActivity(ctx, typeID, recordID, model.ActivityActionUpdate)
	return updated, nil
}

// Delete removes a content record
func (uc *ContentUseCase) Delete(ctx context.Context, typeID types.ContentTypeID, recordID types.RecordID) error {
	if err := typeID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidID, err.Error(), goerr.V(ContentTypeIDKey, typeID))
	}
	if err := recordID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidID, err.Error(), goerr.V(RecordIDKey, recordID))
	}

	if err := uc.repo.Content().Delete(ctx, typeID, recordID); err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrRecordNotFound, "no such content record",
				goerr.V(ContentTypeIDKey, typeID), goerr.V(RecordIDKey, recordID))
		}
		return goerr.Wrap(err, "failed to delete content record", goerr.V(RecordIDKey, recordID))
	}

	uc.logActivity(ctx, typeID, recordID, model.ActivityActionDelete)
	return nil
}

// RecordWithActivity bundles a record with its recent activity entries
type RecordWithActivity struct {
	Record   *model.ContentRecord
	Activity []*model.ActivityEntry
}

// GetWithActivity fetches a record and its recent activity concurrently
func (uc *ContentUseCase) GetWithActivity(ctx context.Context, typeID types.ContentTypeID, recordID types.RecordID) (*RecordWithActivity, error) {
	if err := typeID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidID, err.Error(), goerr.V(ContentTypeIDKey, typeID))
	}
	if err := recordID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidID, err.Error(), goerr.V(RecordIDKey, recordID))
	}

	result := &RecordWithActivity{}
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		record, err := uc.Get(egCtx, typeID, recordID)
		if err != nil {
			return err
		}
		result.Record = record
		return nil
	})

	eg.Go(func() error {
		entries, err := uc.repo.Activity().ListByRecord(egCtx, typeID, recordID, uc.activityLimit)
		if err != nil {
			return goerr.Wrap(err, "failed to list activity",
				goerr.V(ContentTypeIDKey, typeID), goerr.V(RecordIDKey, recordID))
		}
		result.Activity = entries
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// BulkValidate applies a single field kind to every key of the payload. It is
// a dry run: nothing is persisted.
func (uc *ContentUseCase) BulkValidate(kind types.FieldKind, payload map[string]any) (model.ValidatedRecord, error) {
	return model.ValidateUniform(kind, payload)
}
