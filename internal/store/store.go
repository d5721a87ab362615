package store

import (
	"context"
	"errors"

	"github.com/groblegark/bingod/internal/model"
)

// Sentinel errors returned by path-based archival operations.
var (
	// ErrInvalidRef is returned when an archival reference resolves outside
	// the permitted storage area (or names the current slot itself).
	ErrInvalidRef = errors.New("invalid path")

	// ErrNotFound is returned when an archival reference names no record.
	ErrNotFound = errors.New("file not found")

	// ErrMalformed is returned when an explicitly referenced archival record
	// cannot be parsed. Corruption of the current slot is never surfaced this
	// way; LoadCurrent downgrades it to absence.
	ErrMalformed = errors.New("malformed event record")
)

// Store is the persistence gateway for events. It owns a single durable
// "current event" slot plus an unbounded collection of per-event archival
// records addressed by StorageLocation.
type Store interface {
	// LoadCurrent returns the event in the current slot, or (nil, nil) when
	// the slot is empty or its record is unreadable. Favoring availability,
	// corruption is treated as absence, not as a fatal error.
	LoadCurrent(ctx context.Context) (*model.Event, error)

	// SaveCurrent overwrites the current slot unconditionally, creating the
	// backing store if absent.
	SaveCurrent(ctx context.Context, ev *model.Event) error

	// Persist updates both the current slot and the event's archival record
	// as one logical step. The archival write is best-effort: its failure is
	// logged, never returned, and never rolls back the current-slot write.
	Persist(ctx context.Context, ev *model.Event) error

	// ClearCurrent removes the current slot only; archival records are untouched.
	ClearCurrent(ctx context.Context) error

	// CreateEvent assigns the event's immutable StorageLocation, writes its
	// archival record, and installs it in the current slot.
	CreateEvent(ctx context.Context, ev *model.Event) error

	// GetEvent loads the archival record named by ref.
	GetEvent(ctx context.Context, ref string) (*model.Event, error)

	// ListEvents returns summaries of all archival records, newest first.
	// Unreadable records are skipped.
	ListEvents(ctx context.Context) ([]*model.EventSummary, error)

	// UseEvent copies the archival record named by ref into the current
	// slot and returns it.
	UseEvent(ctx context.Context, ref string) (*model.Event, error)

	// DeleteEvent removes the archival record named by ref. When the current
	// slot points at that record, the slot is cleared as well so it never
	// references a nonexistent record.
	DeleteEvent(ctx context.Context, ref string) error

	// Lifecycle
	Close() error
}
