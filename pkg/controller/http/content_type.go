package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
)

type fieldDefinitionRequest struct {
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	Optional       bool     `json:"optional"`
	RelationTarget string   `json:"relationTarget,omitempty"`
	EnumOptions    []string `json:"enumOptions,omitempty"`
}

type contentTypeRequest struct {
	Name   string                   `json:"name"`
	Fields []fieldDefinitionRequest `json:"fields"`
}

type fieldDefinitionResponse struct {
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	Optional       bool     `json:"optional"`
	RelationTarget string   `json:"relationTarget,omitempty"`
	EnumOptions    []string `json:"enumOptions,omitempty"`
}

type contentTypeResponse struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Fields    []fieldDefinitionResponse `json:"fields"`
	CreatedAt time.Time                 `json:"createdAt"`
	UpdatedAt time.Time                 `json:"updatedAt"`
}

func toFieldDefinitions(reqs []fieldDefinitionRequest) []model.FieldDefinition {
	fields := make([]model.FieldDefinition, len(reqs))
	for i, f := range reqs {
		fields[i] = model.FieldDefinition{
			Name:           f.Name,
			Kind:           types.FieldKind(f.Kind),
			Optional:       f.Optional,
			RelationTarget: types.ContentTypeID(f.RelationTarget),
			EnumOptions:    f.EnumOptions,
		}
	}
	return fields
}

func toContentTypeResponse(ct *model.ContentType) contentTypeResponse {
	resp := contentTypeResponse{
		ID:        string(ct.ID),
		Name:      ct.Name,
		Fields:    make([]fieldDefinitionResponse, len(ct.Fields)),
		CreatedAt: ct.CreatedAt,
		UpdatedAt: ct.UpdatedAt,
	}
	for i, f := range ct.Fields {
		resp.Fields[i] = fieldDefinitionResponse{
			Name:           f.Name,
			Kind:           f.Kind.String(),
			Optional:       f.Optional,
			RelationTarget: f.RelationTarget.String(),
			EnumOptions:    f.EnumOptions,
		}
	}
	return resp
}

func (s *Server) createContentType(w http.ResponseWriter, r *http.Request) {
	var req contentTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	ct, err := s.uc.ContentType.Create(r.Context(), req.Name, toFieldDefinitions(req.Fields))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusCreated, toContentTypeResponse(ct))
}

func (s *Server) listContentTypes(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.ContentType.List(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	resp := make([]contentTypeResponse, len(list))
	for i, ct := range list {
		resp[i] = toContentTypeResponse(ct)
	}

	respondJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) getContentType(w http.ResponseWriter, r *http.Request) {
	typeID := types.ContentTypeID(chi.URLParam(r, "typeID"))

	ct, err := s.uc.ContentType.Get(r.Context(), typeID)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, toContentTypeResponse(ct))
}

func (s *Server) replaceContentTypeFields(w http.ResponseWriter, r *http.Request) {
	typeID := types.ContentTypeID(chi.URLParam(r, "typeID"))

	var req struct {
		Fields []fieldDefinitionRequest `json:"fields"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	ct, err := s.uc.ContentType.ReplaceFields(r.Context(), typeID, toFieldDefinitions(req.Fields))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, toContentTypeResponse(ct))
}

func (s *Server) deleteContentType(w http.ResponseWriter, r *http.Request) {
	typeID := types.ContentTypeID(chi.URLParam(r, "typeID"))

	if err := s.uc.ContentType.Delete(r.Context(), typeID); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// kindsHandler serves the closed set of field kinds as JSON
func kindsHandler(w http.ResponseWriter, r *http.Request) {
	kinds := types.AllFieldKinds()
	resp := struct {
		Kinds []string `json:"kinds"`
	}{
		Kinds: make([]string, len(kinds)),
	}
	for i, k := range kinds {
		resp.Kinds[i] = k.String()
	}

	respondJSON(r.Context(), w, http.StatusOK, resp)
}
