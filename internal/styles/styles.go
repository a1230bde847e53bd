// Package styles provides shared lipgloss styles for terminal output.
//
// This package centralizes color definitions so log prefixes and the
// wait spinner stay visually consistent.
package styles

import "github.com/charmbracelet/lipgloss"

// Colors used for diagnostics output
var (
	// Warning is used for warning prefixes (orange)
	Warning lipgloss.TerminalColor = lipgloss.Color("214")

	// Error is used for error prefixes (red)
	Error lipgloss.TerminalColor = lipgloss.Color("196")

	// Debug is used for debug prefixes (turquoise)
	Debug lipgloss.TerminalColor = lipgloss.Color("36")

	// Muted is used for secondary text (gray)
	Muted lipgloss.TerminalColor = lipgloss.Color("240")
)

var (
	warnStyle  = lipgloss.NewStyle().Foreground(Warning)
	errorStyle = lipgloss.NewStyle().Foreground(Error).Bold(true)
	debugStyle = lipgloss.NewStyle().Foreground(Debug)
	mutedStyle = lipgloss.NewStyle().Foreground(Muted)
)

// WarnStyle renders s in the warning color.
func WarnStyle(s string) string { return warnStyle.Render(s) }

// ErrorStyle renders s in the error color.
func ErrorStyle(s string) string { return errorStyle.Render(s) }

// DebugStyle renders s in the debug color.
func DebugStyle(s string) string { return debugStyle.Render(s) }

// MutedStyle renders s in the muted color.
func MutedStyle(s string) string { return mutedStyle.Render(s) }
