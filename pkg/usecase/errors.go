package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	ErrContentTypeNotFound = goerr.New("content type not found")
	ErrRecordNotFound      = goerr.New("content record not found")
	ErrDuplicateName       = goerr.New("content type name already exists")
	ErrInvalidSchema       = goerr.New("invalid content type definition")
	ErrInvalidID           = goerr.New("invalid identifier")
)

// Context keys for error values
const (
	ContentTypeIDKey = "content_type_id"
	RecordIDKey      = "record_id"
)
