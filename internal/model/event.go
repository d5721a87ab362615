package model

import (
	"time"
)

// MinNumber and MaxNumber bound the drawable range for a standard 75-ball game.
const (
	MinNumber = 1
	MaxNumber = 75
)

// Status represents the lifecycle state of an event.
// Transitions are one-directional: ready -> running -> ended.
type Status string

const (
	StatusReady   Status = "ready"
	StatusRunning Status = "running"
	StatusEnded   Status = "ended"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusReady, StatusRunning, StatusEnded:
		return true
	}
	return false
}

// UIConfig is an opaque block of display preferences. The engine passes it
// through unmodified; only the web UI interprets it.
type UIConfig struct {
	AnimationMs int  `json:"animationMs"`
	ConfirmUndo bool `json:"confirmUndo"`
	ConfirmEnd  bool `json:"confirmEnd"`
}

// RulesConfig is an opaque block of game rules. Like UIConfig it is stored and
// returned verbatim; the drawing core only ever uses the 1..75 range.
type RulesConfig struct {
	RangeMin    int  `json:"rangeMin"`
	RangeMax    int  `json:"rangeMax"`
	FreeCenter  bool `json:"freeCenter"`
	WinLine     int  `json:"winLine"`
	DiagAllowed bool `json:"diagAllowed"`
}

// DefaultUI returns the UI preferences applied to newly created events.
func DefaultUI() UIConfig {
	return UIConfig{AnimationMs: 1000, ConfirmUndo: true, ConfirmEnd: true}
}

// DefaultRules returns the rules applied to newly created events.
func DefaultRules() RulesConfig {
	return RulesConfig{RangeMin: MinNumber, RangeMax: MaxNumber, FreeCenter: true, WinLine: 1, DiagAllowed: true}
}

// Event is the sole mutable aggregate: one bingo-drawing session.
//
// DrawnOrder is the single source of truth for the draw history.
// CurrentNumber, CurrentLabel, and RemainingCount are redundantly stored
// caches derived from it and must be recomputed after every mutation.
type Event struct {
	ID             string      `json:"eventId"`
	Name           string      `json:"eventName"`
	WinnersTarget  int         `json:"winnersTarget"`
	Status         Status      `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
	StartedAt      *time.Time  `json:"startedAt"`
	EndedAt        *time.Time  `json:"endedAt"`
	CurrentNumber  *int        `json:"currentNumber"`
	CurrentLabel   *string     `json:"currentLabel"`
	DrawnOrder     []int       `json:"drawnOrder"`
	RemainingCount int         `json:"remainingCount"`
	UI             UIConfig    `json:"ui"`
	Rules          RulesConfig `json:"rules"`

	// StorageLocation references the archival record backing this event.
	// It is assigned once at creation and never relocated.
	StorageLocation string `json:"eventFile"`
}

// DrawCount returns the number of draws performed so far.
func (e *Event) DrawCount() int {
	return len(e.DrawnOrder)
}

// Summarize returns the listing shape for this event's archival record.
func (e *Event) Summarize(fileName string) *EventSummary {
	return &EventSummary{
		ID:              e.ID,
		Name:            e.Name,
		Status:          e.Status,
		CreatedAt:       e.CreatedAt,
		StartedAt:       e.StartedAt,
		EndedAt:         e.EndedAt,
		RemainingCount:  e.RemainingCount,
		DrawCount:       e.DrawCount(),
		StorageLocation: e.StorageLocation,
		FileName:        fileName,
	}
}

// EventSummary is the listing shape for archival records.
type EventSummary struct {
	ID              string     `json:"eventId"`
	Name            string     `json:"eventName"`
	Status          Status     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	StartedAt       *time.Time `json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt"`
	RemainingCount  int        `json:"remainingCount"`
	DrawCount       int        `json:"drawCount"`
	StorageLocation string     `json:"eventFile"`
	FileName        string     `json:"fileName"`
}
