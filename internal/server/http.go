package server

import (
	"encoding/json"
	"net/http"
)

// NewHTTPHandler returns an http.Handler with all routes registered. API
// routes take precedence; everything else falls through to the static UI
// when a web dir is configured.
func (s *BingoServer) NewHTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/state", s.handleGetState)
	mux.HandleFunc("POST /api/state", s.handleReplaceState)
	mux.HandleFunc("POST /api/new", s.handleNewEvent)
	mux.HandleFunc("POST /api/start", s.handleStart)
	mux.HandleFunc("POST /api/draw", s.handleDraw)
	mux.HandleFunc("POST /api/undo", s.handleUndo)
	mux.HandleFunc("POST /api/end", s.handleEnd)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("GET /api/events", s.handleListEvents)
	mux.HandleFunc("POST /api/use", s.handleUseEvent)
	mux.HandleFunc("POST /api/delete", s.handleDeleteEvent)
	mux.HandleFunc("GET /api/events/stream", s.handleEventStream)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.Handle("/", s.staticHandler())
	return mux
}

// handleHealth handles GET /api/health.
func (s *BingoServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeState writes the standard success envelope around an event (which may
// be nil, signaling "no event").
func writeState(w http.ResponseWriter, status int, state any) {
	writeJSON(w, status, map[string]any{"ok": true, "state": state})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"ok": false, "error": message})
}
