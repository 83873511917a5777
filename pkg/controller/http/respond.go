package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/usecase"
	"github.com/headwind-cms/headwind/pkg/utils/errutil"
	"github.com/headwind-cms/headwind/pkg/utils/safe"
)

// respondJSON writes a JSON response with the given status code
func respondJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

// respondError maps domain and use-case errors to HTTP status codes
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err, statusOf(err))
}

// errBadRequest marks malformed requests rejected before reaching a use case
var errBadRequest = goerr.New("bad request")

func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrContentTypeNotFound),
		errors.Is(err, usecase.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrInvalidSchema),
		errors.Is(err, usecase.ErrInvalidID),
		errors.Is(err, model.ErrMissingRequired),
		errors.Is(err, model.ErrWrongType),
		errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, model.ErrInvalidEnumValue),
		errors.Is(err, model.ErrMediaTooLarge),
		errors.Is(err, model.ErrInvalidFieldKind):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON parses the request body into dst
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return goerr.Wrap(errBadRequest, "invalid JSON body", goerr.V("cause", err.Error()))
	}
	return nil
}
