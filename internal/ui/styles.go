package ui

import (
	"fmt"

	"github.com/alfredjeanlab/taskhelm/internal/model"
)

// ANSI256 color codes matching the Ayu palette.
const (
	colorAccent  = 74  // blue
	colorMuted   = 245 // medium gray
	colorGreen   = 114
	colorYellow  = 179
	colorRed     = 167
	colorMagenta = 176
)

var noColor bool

func paint(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string { return paint(colorAccent, s) }

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string { return paint(colorMuted, s) }

// RenderWarn returns s in the warning (yellow) color.
func RenderWarn(s string) string { return paint(colorYellow, s) }

// RenderError returns s in the error (red) color.
func RenderError(s string) string { return paint(colorRed, s) }

// RenderStatus returns the status name colored by its lifecycle stage.
func RenderStatus(s model.Status) string {
	switch s {
	case model.StatusDone, model.StatusPlanDone:
		return paint(colorGreen, s.String())
	case model.StatusRunning, model.StatusAggregating:
		return paint(colorAccent, s.String())
	case model.StatusFailed:
		return paint(colorRed, s.String())
	case model.StatusNeedsReplan:
		return paint(colorMagenta, s.String())
	case model.StatusReady:
		return paint(colorYellow, s.String())
	default:
		return paint(colorMuted, s.String())
	}
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
