package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
)

type contentRecordResponse struct {
	ID            string         `json:"id"`
	ContentTypeID string         `json:"contentTypeId"`
	Data          map[string]any `json:"data"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

type activityResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"createdAt"`
}

func toContentRecordResponse(record *model.ContentRecord) contentRecordResponse {
	return contentRecordResponse{
		ID:            string(record.ID),
		ContentTypeID: string(record.ContentTypeID),
		Data:          record.Data,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func (s *Server) createContent(w http.ResponseWriter, r *http.Request) {
	typeID := types.ContentTypeID(chi.URLParam(r, "typeID"))

	var payload map[string]any
	if err := decodeJSON(r, &payload); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	record, err := s.uc.Content.Create(r.Context(), typeID, payload)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusCreated, toContentRecordResponse(record))
}

func (s *Server) listContent(w http.ResponseWriter, r *http.Request) {
	typeID := types.ContentTypeID(chi.URLParam(r, "typeID"))

	records, err := s.uc.Content.List(r.Context(), typeID)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	resp := make([]contentRecordResponse, len(records))
	for i, record := range records {
		resp[i] = toContentRecordResponse(record)
	}

	respondJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) getContent(w http.ResponseWriter, r *http.Request) {
	typeID := types.ContentTypeID(chi.URLParam(r, "typeID"))
	recordID := types.RecordID(chi.URLParam(r, "recordID"))

	record, err := s.uc.Content.Get(r.Context(), typeID, recordID)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, toContentRecordResponse(record))
}

func (s *Server) updateContent(w http.ResponseWriter, r *http.Request) {
	typeID := types.ContentTypeID(chi.URLParam(r, "typeID"))
	recordID := types.RecordID(chi.URLParam(r, "recordID"))

	var payload map[string]any
	if err := decodeJSON(r, &payload); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	record, err := s.uc.Content.Update(r.Context(), typeID, recordID, payload)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, toContentRecordResponse(record))
}

func (s *Server) deleteContent(w http.ResponseWriter, r *http.Request) {
	typeID := types.ContentTypeID(chi.URLParam(r, "typeID"))
	recordID := types.RecordID(chi.URLParam(r, "recordID"))

	if err := s.uc.Content.Delete(r.Context(), typeID, recordID); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getContentActivity(w http.ResponseWriter, r *http.Request) {
	typeID := types.ContentTypeID(chi.URLParam(r, "typeID"))
	recordID := types.RecordID(chi.URLParam(r, "recordID"))

	result, err := s.uc.Content.GetWithActivity(r.Context(), typeID, recordID)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	resp := struct {
		Record   contentRecordResponse `json:"record"`
		Activity []activityResponse    `json:"activity"`
	}{
		Record:   toContentRecordResponse(result.Record),
		Activity: make([]activityResponse, len(result.Activity)),
	}
	for i, entry := range result.Activity {
		resp.Activity[i] = activityResponse{
			ID:        string(entry.ID),
			Action:    string(entry.Action),
			CreatedAt: entry.CreatedAt,
		}
	}

	respondJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) bulkValidate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind string         `json:"kind"`
		Data map[string]any `json:"data"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	record, err := s.uc.Content.BulkValidate(types.FieldKind(req.Kind), req.Data)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, struct {
		Valid bool           `json:"valid"`
		Data  map[string]any `json:"data"`
	}{
		Valid: true,
		Data:  record,
	})
}
