package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/groblegark/bingod/internal/engine"
	"github.com/groblegark/bingod/internal/events"
	"github.com/groblegark/bingod/internal/idgen"
	"github.com/groblegark/bingod/internal/model"
)

// handleGetState handles GET /api/state. A missing current event is not an
// error; the state field is null.
func (s *BingoServer) handleGetState(w http.ResponseWriter, r *http.Request) {
	ev, err := s.store.LoadCurrent(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}
	if ev == nil {
		writeState(w, http.StatusOK, nil)
		return
	}
	writeState(w, http.StatusOK, ev)
}

// handleNewEvent handles POST /api/new.
func (s *BingoServer) handleNewEvent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		EventName     string `json:"eventName"`
		WinnersTarget int    `json:"winnersTarget"`
	}
	// An empty or invalid body falls back to defaults, as a bare "new event"
	// click from the UI sends no fields.
	_ = json.NewDecoder(r.Body).Decode(&in)

	name := strings.TrimSpace(in.EventName)
	if name == "" {
		name = "BingoEvent"
	}

	now := s.now()
	id, err := idgen.NewEventID(now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate event id")
		return
	}
	ev := engine.NewEvent(id, name, in.WinnersTarget, s.defaultUI, s.defaultRules, now)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.CreateEvent(r.Context(), ev); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	s.publishEvent(r.Context(), events.TopicEventCreated, events.EventCreated{Event: ev})

	writeState(w, http.StatusOK, ev)
}

// handleReplaceState handles POST /api/state: an unconditional full-state
// overwrite used by the UI to sync local edits. The supplied event must be
// well formed; derived fields are recomputed before persisting so the stored
// record always satisfies the engine invariants.
func (s *BingoServer) handleReplaceState(w http.ResponseWriter, r *http.Request) {
	var in struct {
		State *model.Event `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.State == nil {
		writeError(w, http.StatusBadRequest, "state is required")
		return
	}

	ev := in.State
	if ev.DrawnOrder == nil {
		ev.DrawnOrder = []int{}
	}
	engine.Refresh(ev)
	if err := model.ValidateEvent(ev); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Persist(r.Context(), ev); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save state")
		return
	}

	s.publishEvent(r.Context(), events.TopicCurrentReplaced, events.CurrentReplaced{Event: ev})

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handleStart handles POST /api/start. Starting a running event is a no-op;
// starting an ended event fails.
func (s *BingoServer) handleStart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, err := s.store.LoadCurrent(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}
	if ev == nil {
		writeError(w, http.StatusBadRequest, "no event")
		return
	}

	wasRunning := ev.Status == model.StatusRunning
	if err := engine.Start(ev, s.now()); err != nil {
		writeError(w, http.StatusBadRequest, "event ended")
		return
	}

	if !wasRunning {
		if err := s.store.Persist(r.Context(), ev); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save state")
			return
		}
		s.publishEvent(r.Context(), events.TopicEventStarted, events.EventStarted{Event: ev})
	}

	writeState(w, http.StatusOK, ev)
}

// handleDraw handles POST /api/draw.
func (s *BingoServer) handleDraw(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, err := s.store.LoadCurrent(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}
	if ev == nil {
		writeError(w, http.StatusBadRequest, "no event")
		return
	}

	n, err := engine.Draw(ev, s.picker)
	switch {
	case errors.Is(err, engine.ErrNotRunning):
		writeError(w, http.StatusBadRequest, "not running")
		return
	case errors.Is(err, engine.ErrPoolExhausted):
		writeError(w, http.StatusBadRequest, "no remaining numbers")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "draw failed")
		return
	}

	if err := s.store.Persist(r.Context(), ev); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save state")
		return
	}

	s.publishEvent(r.Context(), events.TopicNumberDrawn, events.NumberDrawn{
		EventID:   ev.ID,
		Number:    n,
		Label:     engine.Label(n),
		DrawCount: ev.DrawCount(),
		Remaining: ev.RemainingCount,
	})

	writeState(w, http.StatusOK, ev)
}

// handleUndo handles POST /api/undo: reverts exactly the most recent draw.
func (s *BingoServer) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, err := s.store.LoadCurrent(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}
	if ev == nil {
		writeError(w, http.StatusBadRequest, "no event")
		return
	}

	n, err := engine.Undo(ev)
	switch {
	case errors.Is(err, engine.ErrNotRunning):
		writeError(w, http.StatusBadRequest, "not running")
		return
	case errors.Is(err, engine.ErrNothingToUndo):
		writeError(w, http.StatusBadRequest, "nothing to undo")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "undo failed")
		return
	}

	if err := s.store.Persist(r.Context(), ev); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save state")
		return
	}

	s.publishEvent(r.Context(), events.TopicDrawUndone, events.DrawUndone{
		EventID:   ev.ID,
		Number:    n,
		DrawCount: ev.DrawCount(),
		Remaining: ev.RemainingCount,
	})

	writeState(w, http.StatusOK, ev)
}

// handleEnd handles POST /api/end. Ending is idempotent: an already-ended
// event is returned unchanged without another persist.
func (s *BingoServer) handleEnd(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, err := s.store.LoadCurrent(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}
	if ev == nil {
		writeError(w, http.StatusBadRequest, "no event")
		return
	}

	if ev.Status == model.StatusEnded {
		writeState(w, http.StatusOK, ev)
		return
	}

	engine.End(ev, s.now())
	if err := s.store.Persist(r.Context(), ev); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save state")
		return
	}

	s.publishEvent(r.Context(), events.TopicEventEnded, events.EventEnded{Event: ev})

	writeState(w, http.StatusOK, ev)
}

// handleReset handles POST /api/reset: clears the current slot so the next
// visit starts fresh. Archival records are untouched.
func (s *BingoServer) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ClearCurrent(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear state")
		return
	}

	s.publishEvent(r.Context(), events.TopicCurrentCleared, events.CurrentCleared{})

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
