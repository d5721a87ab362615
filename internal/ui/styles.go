package ui

import (
	"fmt"

	"github.com/groblegark/bingod/internal/model"
)

// ANSI256 color codes for CLI output.
const (
	colorReady   = 74  // blue
	colorRunning = 114 // green
	colorEnded   = 245 // gray
	colorMuted   = 245 // gray
)

var noColor bool

// RenderStatus returns the status string colored by lifecycle state.
func RenderStatus(s model.Status) string {
	if noColor {
		return s.String()
	}
	var code int
	switch s {
	case model.StatusRunning:
		code = colorRunning
	case model.StatusEnded:
		code = colorEnded
	default:
		code = colorReady
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
