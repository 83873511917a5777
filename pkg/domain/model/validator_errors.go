package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrMissingRequired  = goerr.New("required field is missing")
	ErrWrongType        = goerr.New("value has wrong type for field kind")
	ErrInvalidDate      = goerr.New("invalid date value")
	ErrInvalidEnumValue = goerr.New("value is not a member of enum options")
	ErrMediaTooLarge    = goerr.New("media payload exceeds size limit")
	ErrInvalidFieldKind = goerr.New("unknown field kind")
)

// Context keys for error values
const (
	FieldNameKey    = "field_name"
	ExpectedKindKey = "expected_kind"
	ActualTypeKey   = "actual_type"
	EnumValueKey    = "enum_value"
	MediaSizeKey    = "media_size"
	MediaLimitKey   = "media_limit"
)
