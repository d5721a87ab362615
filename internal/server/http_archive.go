package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/groblegark/bingod/internal/events"
	"github.com/groblegark/bingod/internal/model"
	"github.com/groblegark/bingod/internal/store"
)

// handleListEvents handles GET /api/events: summaries of every archival
// record, newest first.
func (s *BingoServer) handleListEvents(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.ListEvents(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	if summaries == nil {
		summaries = []*model.EventSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "events": summaries})
}

// handleUseEvent handles POST /api/use: copies the named archival record into
// the current slot, making it the live event.
func (s *BingoServer) handleUseEvent(w http.ResponseWriter, r *http.Request) {
	ref, ok := decodeRef(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ev, err := s.store.UseEvent(r.Context(), ref)
	if err != nil {
		writeRefError(w, err)
		return
	}

	s.publishEvent(r.Context(), events.TopicCurrentResumed, events.CurrentResumed{Event: ev})

	writeState(w, http.StatusOK, ev)
}

// handleDeleteEvent handles POST /api/delete: removes the named archival
// record. The current slot is cleared by the store when it points at the
// deleted record.
func (s *BingoServer) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	ref, ok := decodeRef(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteEvent(r.Context(), ref); err != nil {
		writeRefError(w, err)
		return
	}

	s.publishEvent(r.Context(), events.TopicEventDeleted, events.EventDeleted{StorageLocation: ref})

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// decodeRef extracts the eventFile reference from a request body, writing the
// error response itself when the reference is missing.
func decodeRef(w http.ResponseWriter, r *http.Request) (string, bool) {
	var in struct {
		StorageLocation string `json:"eventFile"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)
	ref := strings.TrimSpace(in.StorageLocation)
	if ref == "" {
		writeError(w, http.StatusBadRequest, "eventFile is required")
		return "", false
	}
	return ref, true
}

// writeRefError maps store errors for path-addressed operations onto the wire.
func writeRefError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidRef):
		writeError(w, http.StatusBadRequest, "invalid path")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "file not found")
	case errors.Is(err, store.ErrMalformed):
		writeError(w, http.StatusBadRequest, "failed to read json")
	default:
		writeError(w, http.StatusInternalServerError, "operation failed")
	}
}
