package ui

import (
	"fmt"

	"github.com/giubellucas/calendario-inteligente/internal/model"
)

// ANSI256 color codes.
const (
	colorAccent = 74  // blue
	colorUrgent = 203 // red
	colorSoon   = 215 // orange
	colorMuted  = 245 // medium gray
	colorOK     = 114 // green
)

var noColor bool

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// RenderOK returns s in green.
func RenderOK(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorOK, s)
}

// RenderUrgency colors s according to how close the event is: red for
// urgent, orange for soon, gray otherwise.
func RenderUrgency(s string, u model.Urgency) string {
	if noColor {
		return s
	}
	switch u {
	case model.UrgencyUrgent:
		return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorUrgent, s)
	case model.UrgencySoon:
		return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorSoon, s)
	}
	return RenderMuted(s)
}

// RenderPriority marks high priority in red and low in gray; medium is
// passed through.
func RenderPriority(s string, p model.Priority) string {
	if noColor {
		return s
	}
	switch p {
	case model.PriorityHigh:
		return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorUrgent, s)
	case model.PriorityLow:
		return RenderMuted(s)
	}
	return s
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
