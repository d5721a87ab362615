// Package jsonfile implements the event store on top of a directory of
// human-inspectable JSON files.
//
// The current slot is data/latest.json; each event additionally owns an
// archival record data/<eventId>_<safe-name>.json whose location never
// changes after creation. Both records share the same shape, so either can
// round-trip through the other.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/groblegark/bingod/internal/model"
	"github.com/groblegark/bingod/internal/store"
)

// currentFile is the file name of the current-event slot inside the data dir.
const currentFile = "latest.json"

// Store persists events as JSON files under a single data directory.
type Store struct {
	dataDir string
	logger  *slog.Logger
}

// New creates a file-backed store rooted at dataDir, creating the directory
// if needed. The directory path is resolved to an absolute path once so that
// archival references can be containment-checked against it.
func New(dataDir string, logger *slog.Logger) (*Store, error) {
	abs, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("resolving data dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dataDir: abs, logger: logger}, nil
}

// DataDir returns the absolute path of the storage area.
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) currentPath() string {
	return filepath.Join(s.dataDir, currentFile)
}

// resolve validates that ref names a file inside the data directory and
// returns its cleaned absolute path. Relative references are interpreted
// against the data dir, so the bare file names from ListEvents work as refs.
// References escaping the storage area (or the storage area itself) are
// rejected with ErrInvalidRef.
func (s *Store) resolve(ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", store.ErrInvalidRef
	}
	if !filepath.IsAbs(ref) {
		ref = filepath.Join(s.dataDir, ref)
	}
	abs := filepath.Clean(ref)
	rel, err := filepath.Rel(s.dataDir, abs)
	if err != nil {
		return "", store.ErrInvalidRef
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", store.ErrInvalidRef
	}
	return abs, nil
}

// safeName strips characters that are awkward in file names, keeping only
// letters, digits, '-' and '_'. An empty result falls back to "event".
func safeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "event"
	}
	return out
}

// writeEvent marshals the event with indentation (the records are meant to be
// opened in an editor) and writes it in place.
func writeEvent(path string, ev *model.Event) error {
	data, err := json.MarshalIndent(ev, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

func readEvent(path string) (*model.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ev model.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrMalformed, filepath.Base(path))
	}
	if ev.DrawnOrder == nil {
		ev.DrawnOrder = []int{}
	}
	return &ev, nil
}

// LoadCurrent returns the event in the current slot, or (nil, nil) when the
// slot is empty. A slot record that exists but cannot be parsed is treated
// as absence; the next save simply overwrites it.
func (s *Store) LoadCurrent(_ context.Context) (*model.Event, error) {
	ev, err := readEvent(s.currentPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		s.logger.Warn("current slot unreadable, treating as absent", "path", s.currentPath(), "error", err)
		return nil, nil
	}
	return ev, nil
}

// SaveCurrent overwrites the current slot unconditionally.
func (s *Store) SaveCurrent(_ context.Context, ev *model.Event) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	return writeEvent(s.currentPath(), ev)
}

// Persist updates the current slot and, best-effort, the event's archival
// record. The archival write never fails the operation: the current slot is
// the record of operation, the archive is a history copy.
func (s *Store) Persist(ctx context.Context, ev *model.Event) error {
	if err := s.SaveCurrent(ctx, ev); err != nil {
		return err
	}

	if ev.StorageLocation == "" {
		return nil
	}
	path, err := s.resolve(ev.StorageLocation)
	if err != nil {
		s.logger.Warn("archival location outside storage area, skipping archival write",
			"location", ev.StorageLocation)
		return nil
	}
	if err := writeEvent(path, ev); err != nil {
		s.logger.Warn("archival write failed", "path", path, "error", err)
	}
	return nil
}

// ClearCurrent removes the current slot; a missing slot is not an error.
func (s *Store) ClearCurrent(_ context.Context) error {
	if err := os.Remove(s.currentPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing current slot: %w", err)
	}
	return nil
}

// CreateEvent assigns the event's archival location from its ID and name,
// writes the archival record, and installs the event in the current slot.
func (s *Store) CreateEvent(ctx context.Context, ev *model.Event) error {
	fileName := fmt.Sprintf("%s_%s.json", ev.ID, safeName(ev.Name))
	ev.StorageLocation = filepath.Join(s.dataDir, fileName)

	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := writeEvent(ev.StorageLocation, ev); err != nil {
		return err
	}
	return s.SaveCurrent(ctx, ev)
}

// GetEvent loads the archival record named by ref.
func (s *Store) GetEvent(_ context.Context, ref string) (*model.Event, error) {
	path, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	ev, err := readEvent(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return ev, nil
}

// ListEvents returns summaries for every archival record in the data dir,
// newest first (file names sort by creation time thanks to the timestamped
// event IDs). The current slot and unreadable files are skipped.
func (s *Store) ListEvents(_ context.Context) ([]*model.EventSummary, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("reading data dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == currentFile || !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	summaries := make([]*model.EventSummary, 0, len(names))
	for _, name := range names {
		path := filepath.Join(s.dataDir, name)
		ev, err := readEvent(path)
		if err != nil {
			s.logger.Warn("skipping unreadable archival record", "path", path, "error", err)
			continue
		}
		// Report the record's actual location rather than the (possibly
		// stale) one stored inside it.
		ev.StorageLocation = path
		summaries = append(summaries, ev.Summarize(name))
	}
	return summaries, nil
}

// UseEvent copies the archival record named by ref into the current slot and
// returns it, resuming that event.
func (s *Store) UseEvent(ctx context.Context, ref string) (*model.Event, error) {
	ev, err := s.GetEvent(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.SaveCurrent(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// DeleteEvent removes the archival record named by ref. The current slot file
// itself can never be deleted through this path; when the slot points at the
// record being deleted, the slot is cleared first.
func (s *Store) DeleteEvent(ctx context.Context, ref string) error {
	path, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if filepath.Base(path) == currentFile {
		return store.ErrInvalidRef
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return store.ErrNotFound
		}
		return fmt.Errorf("stat archival record: %w", err)
	}

	if cur, _ := s.LoadCurrent(ctx); cur != nil {
		if loc, err := s.resolve(cur.StorageLocation); err == nil && loc == path {
			if err := s.ClearCurrent(ctx); err != nil {
				return err
			}
		}
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting archival record: %w", err)
	}
	return nil
}

// Close is a no-op; the store holds no open resources between calls.
func (s *Store) Close() error {
	return nil
}
