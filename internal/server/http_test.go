package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/groblegark/bingod/internal/events"
	"github.com/groblegark/bingod/internal/model"
	"github.com/groblegark/bingod/internal/store/jsonfile"
)

// firstPicker always picks index 0, making draws deterministic: numbers come
// out in ascending order.
type firstPicker struct{}

func (firstPicker) Pick(int) int { return 0 }

func newTestServer(t *testing.T) (*BingoServer, http.Handler, string) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := jsonfile.New(dir, logger)
	if err != nil {
		t.Fatalf("jsonfile.New: %v", err)
	}
	s := NewBingoServer(st, &events.NoopPublisher{}, Options{
		Picker: firstPicker{},
		Now:    func() time.Time { return time.Date(2026, 2, 9, 22, 15, 30, 0, time.UTC) },
	})
	return s, s.NewHTTPHandler(), dir
}

// doJSON performs an HTTP request with an optional JSON body and returns the recorder.
func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// requireStatus asserts the recorder has the expected HTTP status code.
func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected status %d, got %d; body: %s", code, rec.Code, rec.Body.String())
	}
}

// stateEnvelope is the standard {ok, state} response.
type stateEnvelope struct {
	OK    bool         `json:"ok"`
	State *model.Event `json:"state"`
	Error string       `json:"error"`
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) stateEnvelope {
	t.Helper()
	var env stateEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v; body: %s", err, rec.Body.String())
	}
	return env
}

// requireError asserts a failed envelope with the given message.
func requireError(t *testing.T, rec *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	requireStatus(t, rec, code)
	env := decodeState(t, rec)
	if env.OK {
		t.Fatalf("expected ok=false, body: %s", rec.Body.String())
	}
	if env.Error != msg {
		t.Fatalf("expected error %q, got %q", msg, env.Error)
	}
}

func TestHandleHealth(t *testing.T) {
	_, h, _ := newTestServer(t)
	rec := doJSON(t, h, "GET", "/api/health", nil)
	requireStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health body: %s", rec.Body.String())
	}
}

func TestHandleGetState_Empty(t *testing.T) {
	_, h, _ := newTestServer(t)
	rec := doJSON(t, h, "GET", "/api/state", nil)
	requireStatus(t, rec, http.StatusOK)
	env := decodeState(t, rec)
	if !env.OK || env.State != nil {
		t.Fatalf("expected ok with null state, got %s", rec.Body.String())
	}
}

func TestHandleNewEvent_Defaults(t *testing.T) {
	_, h, dir := newTestServer(t)
	rec := doJSON(t, h, "POST", "/api/new", nil)
	requireStatus(t, rec, http.StatusOK)
	env := decodeState(t, rec)
	ev := env.State
	if ev == nil {
		t.Fatal("expected state in response")
	}
	if ev.Name != "BingoEvent" {
		t.Errorf("expected default name BingoEvent, got %q", ev.Name)
	}
	if ev.Status != model.StatusReady {
		t.Errorf("expected status ready, got %s", ev.Status)
	}
	if ev.RemainingCount != 75 {
		t.Errorf("expected 75 remaining, got %d", ev.RemainingCount)
	}
	if ev.DrawnOrder == nil || len(ev.DrawnOrder) != 0 {
		t.Errorf("expected empty drawnOrder, got %v", ev.DrawnOrder)
	}
	if !strings.HasPrefix(ev.ID, "20260209_221530-") {
		t.Errorf("unexpected id %q", ev.ID)
	}
	if ev.StorageLocation == "" {
		t.Error("expected storage location assigned")
	}
	// Both the current slot and the archival record exist on disk.
	if _, err := os.Stat(filepath.Join(dir, "latest.json")); err != nil {
		t.Errorf("current slot missing: %v", err)
	}
	if _, err := os.Stat(ev.StorageLocation); err != nil {
		t.Errorf("archival record missing: %v", err)
	}
}

func TestHandleNewEvent_NamedWithTarget(t *testing.T) {
	_, h, _ := newTestServer(t)
	rec := doJSON(t, h, "POST", "/api/new", map[string]any{
		"eventName":     "Spring Gala",
		"winnersTarget": 3,
	})
	requireStatus(t, rec, http.StatusOK)
	env := decodeState(t, rec)
	if env.State.Name != "Spring Gala" {
		t.Errorf("expected name Spring Gala, got %q", env.State.Name)
	}
	if env.State.WinnersTarget != 3 {
		t.Errorf("expected winnersTarget 3, got %d", env.State.WinnersTarget)
	}
}

func TestHandleStart(t *testing.T) {
	_, h, _ := newTestServer(t)
	doJSON(t, h, "POST", "/api/new", nil)

	rec := doJSON(t, h, "POST", "/api/start", nil)
	requireStatus(t, rec, http.StatusOK)
	env := decodeState(t, rec)
	if env.State.Status != model.StatusRunning {
		t.Fatalf("expected running, got %s", env.State.Status)
	}
	if env.State.StartedAt == nil {
		t.Fatal("expected startedAt set")
	}
	started := *env.State.StartedAt

	// Starting again is a no-op: same startedAt, no error.
	rec = doJSON(t, h, "POST", "/api/start", nil)
	requireStatus(t, rec, http.StatusOK)
	env = decodeState(t, rec)
	if !env.State.StartedAt.Equal(started) {
		t.Errorf("startedAt changed on repeated start: %v vs %v", env.State.StartedAt, started)
	}
}

func TestHandleStart_NoEvent(t *testing.T) {
	_, h, _ := newTestServer(t)
	rec := doJSON(t, h, "POST", "/api/start", nil)
	requireError(t, rec, http.StatusBadRequest, "no event")
}

func TestHandleStart_AfterEnd(t *testing.T) {
	_, h, _ := newTestServer(t)
	doJSON(t, h, "POST", "/api/new", nil)
	doJSON(t, h, "POST", "/api/start", nil)
	doJSON(t, h, "POST", "/api/end", nil)

	rec := doJSON(t, h, "POST", "/api/start", nil)
	requireError(t, rec, http.StatusBadRequest, "event ended")
}

func TestHandleDraw(t *testing.T) {
	_, h, _ := newTestServer(t)
	doJSON(t, h, "POST", "/api/new", nil)
	doJSON(t, h, "POST", "/api/start", nil)

	rec := doJSON(t, h, "POST", "/api/draw", nil)
	requireStatus(t, rec, http.StatusOK)
	env := decodeState(t, rec)
	// firstPicker draws the lowest remaining number.
	if env.State.CurrentNumber == nil || *env.State.CurrentNumber != 1 {
		t.Fatalf("expected current number 1, got %v", env.State.CurrentNumber)
	}
	if env.State.CurrentLabel == nil || *env.State.CurrentLabel != "B-1" {
		t.Fatalf("expected label B-1, got %v", env.State.CurrentLabel)
	}
	if env.State.RemainingCount != 74 {
		t.Errorf("expected 74 remaining, got %d", env.State.RemainingCount)
	}
}

func TestHandleDraw_NotRunning(t *testing.T) {
	_, h, _ := newTestServer(t)
	doJSON(t, h, "POST", "/api/new", nil)

	rec := doJSON(t, h, "POST", "/api/draw", nil)
	requireError(t, rec, http.StatusBadRequest, "not running")

	// A failed draw must not mutate state.
	rec = doJSON(t, h, "GET", "/api/state", nil)
	env := decodeState(t, rec)
	if len(env.State.DrawnOrder) != 0 {
		t.Errorf("failed draw mutated drawnOrder: %v", env.State.DrawnOrder)
	}
}

func TestHandleDraw_Exhaustion(t *testing.T) {
	_, h, _ := newTestServer(t)
	doJSON(t, h, "POST", "/api/new", nil)
	doJSON(t, h, "POST", "/api/start", nil)

	for i := range 75 {
		rec := doJSON(t, h, "POST", "/api/draw", nil)
		requireStatus(t, rec, http.StatusOK)
		env := decodeState(t, rec)
		if env.State.RemainingCount != 75-i-1 {
			t.Fatalf("draw %d: expected %d remaining, got %d", i+1, 75-i-1, env.State.RemainingCount)
		}
	}

	rec := doJSON(t, h, "POST", "/api/draw", nil)
	requireError(t, rec, http.StatusBadRequest, "no remaining numbers")

	// Exhaustion does not end the event.
	rec = doJSON(t, h, "GET", "/api/state", nil)
	env := decodeState(t, rec)
	if env.State.Status != model.StatusRunning {
		t.Errorf("expected still running after exhaustion, got %s", env.State.Status)
	}
	if len(env.State.DrawnOrder) != 75 {
		t.Errorf("expected 75 drawn, got %d", len(env.State.DrawnOrder))
	}
}

func TestHandleUndo(t *testing.T) {
	_, h, _ := newTestServer(t)
	doJSON(t, h, "POST", "/api/new", nil)
	doJSON(t, h, "POST", "/api/start", nil)
	doJSON(t, h, "POST", "/api/draw", nil)
	doJSON(t, h, "POST", "/api/draw", nil)

	rec := doJSON(t, h, "POST", "/api/undo", nil)
	requireStatus(t, rec, http.StatusOK)
	env := decodeState(t, rec)
	if len(env.State.DrawnOrder) != 1 {
		t.Fatalf("expected 1 drawn after undo, got %d", len(env.State.DrawnOrder))
	}
	// Current number falls back to the previous draw.
	if env.State.CurrentNumber == nil || *env.State.CurrentNumber != 1 {
		t.Errorf("expected current number 1 after undo, got %v", env.State.CurrentNumber)
	}
	if env.State.RemainingCount != 74 {
		t.Errorf("expected 74 remaining after undo, got %d", env.State.RemainingCount)
	}
}

func TestHandleUndo_Empty(t *testing.T) {
	_, h, _ := newTestServer(t)
	doJSON(t, h, "POST", "/api/new", nil)
	doJSON(t, h, "POST", "/api/start", nil)

	rec := doJSON(t, h, "POST", "/api/undo", nil)
	requireError(t, rec, http.StatusBadRequest, "nothing to undo")
}

func TestHandleEnd_Idempotent(t *testing.T) {
	_, h, _ := newTestServer(t)
	doJSON(t, h, "POST", "/api/new", nil)
	doJSON(t, h, "POST", "/api/start", nil)

	rec := doJSON(t, h, "POST", "/api/end", nil)
	requireStatus(t, rec, http.StatusOK)
	env := decodeState(t, rec)
	if env.State.Status != model.StatusEnded {
		t.Fatalf("expected ended, got %s", env.State.Status)
	}
	if env.State.EndedAt == nil {
		t.Fatal("expected endedAt set")
	}
	ended := *env.State.EndedAt

	rec = doJSON(t, h, "POST", "/api/end", nil)
	requireStatus(t, rec, http.StatusOK)
	env = decodeState(t, rec)
	if !env.State.EndedAt.Equal(ended) {
		t.Errorf("endedAt changed on repeated end: %v vs %v", env.State.EndedAt, ended)
	}
}

func TestHandleReplaceState(t *testing.T) {
	_, h, _ := newTestServer(t)
	rec := doJSON(t, h, "POST", "/api/new", nil)
	ev := decodeState(t, rec).State

	ev.DrawnOrder = []int{5, 12}
	ev.Status = model.StatusRunning
	now := time.Now().UTC()
	ev.StartedAt = &now

	rec = doJSON(t, h, "POST", "/api/state", map[string]any{"state": ev})
	requireStatus(t, rec, http.StatusOK)

	// Derived fields are recomputed from drawnOrder.
	rec = doJSON(t, h, "GET", "/api/state", nil)
	env := decodeState(t, rec)
	if env.State.CurrentNumber == nil || *env.State.CurrentNumber != 12 {
		t.Errorf("expected current number 12, got %v", env.State.CurrentNumber)
	}
	if env.State.CurrentLabel == nil || *env.State.CurrentLabel != "B-12" {
		t.Errorf("expected label B-12, got %v", env.State.CurrentLabel)
	}
	if env.State.RemainingCount != 73 {
		t.Errorf("expected 73 remaining, got %d", env.State.RemainingCount)
	}
}

func TestHandleReplaceState_Missing(t *testing.T) {
	_, h, _ := newTestServer(t)
	rec := doJSON(t, h, "POST", "/api/state", map[string]any{})
	requireError(t, rec, http.StatusBadRequest, "state is required")
}

func TestHandleReplaceState_Invalid(t *testing.T) {
	_, h, _ := newTestServer(t)
	rec := doJSON(t, h, "POST", "/api/state", map[string]any{
		"state": map[string]any{
			"eventId":    "x",
			"eventName":  "bad",
			"status":     "running",
			"drawnOrder": []int{1, 1},
		},
	})
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestHandleReset(t *testing.T) {
	_, h, _ := newTestServer(t)
	rec := doJSON(t, h, "POST", "/api/new", nil)
	ev := decodeState(t, rec).State

	rec = doJSON(t, h, "POST", "/api/reset", nil)
	requireStatus(t, rec, http.StatusOK)

	rec = doJSON(t, h, "GET", "/api/state", nil)
	env := decodeState(t, rec)
	if env.State != nil {
		t.Fatalf("expected null state after reset, got %+v", env.State)
	}

	// Archival record survives the reset.
	if _, err := os.Stat(ev.StorageLocation); err != nil {
		t.Errorf("archival record removed by reset: %v", err)
	}
}

func TestHandleListEvents(t *testing.T) {
	_, h, _ := newTestServer(t)

	rec := doJSON(t, h, "GET", "/api/events", nil)
	requireStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"events":[]`) {
		t.Fatalf("expected empty events array, got %s", rec.Body.String())
	}

	doJSON(t, h, "POST", "/api/new", map[string]any{"eventName": "First"})
	doJSON(t, h, "POST", "/api/new", map[string]any{"eventName": "Second"})

	rec = doJSON(t, h, "GET", "/api/events", nil)
	requireStatus(t, rec, http.StatusOK)
	var out struct {
		OK     bool                  `json:"ok"`
		Events []*model.EventSummary `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(out.Events))
	}
}

func TestHandleUseEvent(t *testing.T) {
	_, h, _ := newTestServer(t)
	rec := doJSON(t, h, "POST", "/api/new", map[string]any{"eventName": "Archived"})
	ev := decodeState(t, rec).State
	doJSON(t, h, "POST", "/api/reset", nil)

	rec = doJSON(t, h, "POST", "/api/use", map[string]any{"eventFile": ev.StorageLocation})
	requireStatus(t, rec, http.StatusOK)
	env := decodeState(t, rec)
	if env.State.ID != ev.ID {
		t.Fatalf("expected resumed event %s, got %s", ev.ID, env.State.ID)
	}

	rec = doJSON(t, h, "GET", "/api/state", nil)
	env = decodeState(t, rec)
	if env.State == nil || env.State.ID != ev.ID {
		t.Fatal("use did not install the event in the current slot")
	}
}

func TestHandleUseEvent_Errors(t *testing.T) {
	_, h, dir := newTestServer(t)

	rec := doJSON(t, h, "POST", "/api/use", map[string]any{})
	requireError(t, rec, http.StatusBadRequest, "eventFile is required")

	rec = doJSON(t, h, "POST", "/api/use", map[string]any{"eventFile": "../../etc/passwd"})
	requireError(t, rec, http.StatusBadRequest, "invalid path")

	rec = doJSON(t, h, "POST", "/api/use", map[string]any{"eventFile": "nope.json"})
	requireError(t, rec, http.StatusNotFound, "file not found")

	bad := filepath.Join(dir, "20260101_000000_bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	rec = doJSON(t, h, "POST", "/api/use", map[string]any{"eventFile": bad})
	requireError(t, rec, http.StatusBadRequest, "failed to read json")
}

func TestHandleDeleteEvent(t *testing.T) {
	_, h, _ := newTestServer(t)
	rec := doJSON(t, h, "POST", "/api/new", nil)
	ev := decodeState(t, rec).State

	rec = doJSON(t, h, "POST", "/api/delete", map[string]any{"eventFile": ev.StorageLocation})
	requireStatus(t, rec, http.StatusOK)

	if _, err := os.Stat(ev.StorageLocation); !os.IsNotExist(err) {
		t.Errorf("expected record removed, stat err = %v", err)
	}

	// Deleting the current event clears the slot.
	rec = doJSON(t, h, "GET", "/api/state", nil)
	env := decodeState(t, rec)
	if env.State != nil {
		t.Errorf("expected null state after deleting current event, got %+v", env.State)
	}
}

func TestHandleDeleteEvent_Errors(t *testing.T) {
	_, h, _ := newTestServer(t)

	rec := doJSON(t, h, "POST", "/api/delete", map[string]any{})
	requireError(t, rec, http.StatusBadRequest, "eventFile is required")

	rec = doJSON(t, h, "POST", "/api/delete", map[string]any{"eventFile": "latest.json"})
	requireError(t, rec, http.StatusBadRequest, "invalid path")

	rec = doJSON(t, h, "POST", "/api/delete", map[string]any{"eventFile": "missing.json"})
	requireError(t, rec, http.StatusNotFound, "file not found")
}

func TestStaticHandler_NoWebDir(t *testing.T) {
	_, h, _ := newTestServer(t)
	rec := doJSON(t, h, "GET", "/index.html", nil)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestStaticHandler_PageRoutes(t *testing.T) {
	dir := t.TempDir()
	web := t.TempDir()
	for name, body := range map[string]string{
		"index.html": "<html>board</html>",
		"draw.html":  "<html>draw</html>",
	} {
		if err := os.WriteFile(filepath.Join(web, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := jsonfile.New(dir, logger)
	if err != nil {
		t.Fatal(err)
	}
	s := NewBingoServer(st, &events.NoopPublisher{}, Options{WebDir: web})
	h := s.NewHTTPHandler()

	rec := doJSON(t, h, "GET", "/", nil)
	requireStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "board") {
		t.Errorf("unexpected root body: %s", rec.Body.String())
	}

	rec = doJSON(t, h, "GET", "/draw", nil)
	requireStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "draw") {
		t.Errorf("unexpected /draw body: %s", rec.Body.String())
	}
}
