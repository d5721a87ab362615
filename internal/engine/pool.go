package engine

import "github.com/groblegark/bingod/internal/model"

// Remaining derives the set of undrawn numbers from the draw history.
// It returns {1..75} minus the values present in drawnOrder, in ascending
// order. Out-of-range entries in the history are ignored rather than treated
// as errors; DrawnOrder is the single source of truth and this function must
// be recomputed from it after every mutation, never cached independently.
func Remaining(drawnOrder []int) []int {
	var used [model.MaxNumber + 1]bool
	for _, n := range drawnOrder {
		if n >= model.MinNumber && n <= model.MaxNumber {
			used[n] = true
		}
	}

	remaining := make([]int, 0, model.MaxNumber)
	for n := model.MinNumber; n <= model.MaxNumber; n++ {
		if !used[n] {
			remaining = append(remaining, n)
		}
	}
	return remaining
}
