package engine

import (
	"github.com/groblegark/bingod/internal/model"
)

// Draw selects one undrawn number uniformly at random, appends it to the
// event's draw history, and refreshes the derived fields. It returns the
// drawn number. The event must be running and the pool non-empty; on error
// the event is left unmodified.
func Draw(ev *model.Event, p Picker) (int, error) {
	if ev.Status != model.StatusRunning {
		return 0, ErrNotRunning
	}

	remaining := Remaining(ev.DrawnOrder)
	if len(remaining) == 0 {
		return 0, ErrPoolExhausted
	}

	n := remaining[p.Pick(len(remaining))]
	ev.DrawnOrder = append(ev.DrawnOrder, n)
	Refresh(ev)
	return n, nil
}

// Undo reverts exactly the most recent draw and refreshes the derived fields.
// It returns the removed number. There is no multi-step undo and no redo; on
// error the event is left unmodified.
func Undo(ev *model.Event) (int, error) {
	if ev.Status != model.StatusRunning {
		return 0, ErrNotRunning
	}
	if len(ev.DrawnOrder) == 0 {
		return 0, ErrNothingToUndo
	}

	n := ev.DrawnOrder[len(ev.DrawnOrder)-1]
	ev.DrawnOrder = ev.DrawnOrder[:len(ev.DrawnOrder)-1]
	Refresh(ev)
	return n, nil
}

// Refresh recomputes the derived fields (currentNumber, currentLabel,
// remainingCount) from the draw history.
func Refresh(ev *model.Event) {
	if len(ev.DrawnOrder) == 0 {
		ev.CurrentNumber = nil
		ev.CurrentLabel = nil
	} else {
		n := ev.DrawnOrder[len(ev.DrawnOrder)-1]
		label := Label(n)
		ev.CurrentNumber = &n
		ev.CurrentLabel = &label
	}
	ev.RemainingCount = len(Remaining(ev.DrawnOrder))
}
