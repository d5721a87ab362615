package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateEvent checks a caller-supplied Event for constraint violations.
// It is applied before accepting a full-state replacement, so a buggy or
// malicious UI cannot persist a record the engine could not operate on.
// Returns a *ValidationError if any rules fail, or nil if the event is valid.
func ValidateEvent(e *Event) error {
	var ve ValidationError

	if strings.TrimSpace(e.ID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "eventId", Message: "is required"})
	}
	if strings.TrimSpace(e.Name) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "eventName", Message: "is required"})
	}
	if e.WinnersTarget < 0 {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "winnersTarget",
			Message: fmt.Sprintf("must be non-negative, got %d", e.WinnersTarget),
		})
	}
	if !e.Status.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "status",
			Message: fmt.Sprintf("invalid value %q", e.Status),
		})
	}

	// DrawnOrder: every value in range, no duplicates, at most 75 entries.
	seen := make(map[int]bool, len(e.DrawnOrder))
	for _, n := range e.DrawnOrder {
		if n < MinNumber || n > MaxNumber {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   "drawnOrder",
				Message: fmt.Sprintf("value %d out of range %d-%d", n, MinNumber, MaxNumber),
			})
			continue
		}
		if seen[n] {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   "drawnOrder",
				Message: fmt.Sprintf("duplicate value %d", n),
			})
		}
		seen[n] = true
	}

	// CurrentNumber must mirror the last element of DrawnOrder (or be null
	// when nothing has been drawn).
	if len(e.DrawnOrder) == 0 {
		if e.CurrentNumber != nil {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   "currentNumber",
				Message: "must be null when drawnOrder is empty",
			})
		}
	} else if e.CurrentNumber == nil || *e.CurrentNumber != e.DrawnOrder[len(e.DrawnOrder)-1] {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "currentNumber",
			Message: "must equal the last element of drawnOrder",
		})
	}

	// Timestamp ordering: startedAt requires createdAt, endedAt requires startedAt.
	if e.Status != StatusReady && e.StartedAt == nil {
		ve.Errors = append(ve.Errors, FieldError{Field: "startedAt", Message: "is required once the event has started"})
	}
	if e.Status == StatusEnded && e.EndedAt == nil {
		ve.Errors = append(ve.Errors, FieldError{Field: "endedAt", Message: "is required for an ended event"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
