package memory

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/headwind-cms/headwind/pkg/domain/interfaces"
)

// Repository errors
var (
	ErrNotFound      = goerr.New("not found")
	ErrAlreadyExists = goerr.New("already exists")
)

// Memory is an in-memory Repository implementation for development and tests
type Memory struct {
	contentType *contentTypeRepository
	content     *contentRepository
	activity    *activityRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		contentType: newContentTypeRepository(),
		content:     newContentRepository(),
		activity:    newActivityRepository(),
	}
}

func (m *Memory) ContentType() interfaces.ContentTypeRepository {
	return m.contentType
}

func (m *Memory) Content() interfaces.ContentRepository {
	return m.content
}

func (m *Memory) Activity() interfaces.ActivityRepository {
	return m.activity
}

func (m *Memory) Close() error {
	return nil
}
