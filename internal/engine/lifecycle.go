package engine

import (
	"time"

	"github.com/groblegark/bingod/internal/model"
)

// NewEvent returns a fresh event in the ready state with an empty draw
// history and a full pool. StorageLocation is left empty; the store assigns
// it when the archival record is created.
func NewEvent(id, name string, winnersTarget int, ui model.UIConfig, rules model.RulesConfig, now time.Time) *model.Event {
	if winnersTarget < 0 {
		winnersTarget = 0
	}
	return &model.Event{
		ID:             id,
		Name:           name,
		WinnersTarget:  winnersTarget,
		Status:         model.StatusReady,
		CreatedAt:      now,
		DrawnOrder:     []int{},
		RemainingCount: model.MaxNumber,
		UI:             ui,
		Rules:          rules,
	}
}

// Start transitions the event to running and stamps startedAt. Starting an
// already-running event is a no-op; starting an ended event fails with
// ErrEventEnded. Status never regresses.
func Start(ev *model.Event, now time.Time) error {
	if ev.Status == model.StatusEnded {
		return ErrEventEnded
	}
	if ev.Status == model.StatusRunning {
		return nil
	}
	ev.Status = model.StatusRunning
	ev.StartedAt = &now
	return nil
}

// End transitions the event to the terminal ended state and stamps endedAt.
// Ending an already-ended event is a no-op, so endedAt is set exactly once.
// The draw history and counters are preserved for display.
func End(ev *model.Event, now time.Time) {
	if ev.Status == model.StatusEnded {
		return
	}
	ev.Status = model.StatusEnded
	ev.EndedAt = &now
}
