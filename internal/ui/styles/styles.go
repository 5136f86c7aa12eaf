// Package styles provides shared lipgloss styles for terminal output.
//
// This package centralizes color definitions and styling to ensure
// visual consistency across the report and prompt components, and owns
// the global color mode derived from the --color flag.
package styles

import (
	imgcolor "image/color"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Primary colors used throughout the UI
var (
	// Primary is the main accent color (cyan/teal)
	Primary imgcolor.Color = lipgloss.Color("62")

	// Success is used for created worktrees and positive outcomes (green)
	Success imgcolor.Color = lipgloss.Color("82")

	// Warning is used for blocked and skipped entries (yellow)
	Warning imgcolor.Color = lipgloss.Color("214")

	// Error is used for failures (red)
	Error imgcolor.Color = lipgloss.Color("196")

	// Muted is used for unchanged entries and secondary text (gray)
	Muted imgcolor.Color = lipgloss.Color("240")
)

// Common styles
var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	// PrimaryStyle applies the primary color
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)

	// SuccessStyle applies the success color
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// WarningStyle applies the warning color
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)

	// ErrorStyle applies the error color
	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	// MutedStyle applies the muted color
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)
)

var colorEnabled = true

// SetColorMode configures color output from the --color flag value.
// "always" forces color, "never" disables it, and "auto" enables color
// only when out is a terminal and NO_COLOR is unset. The fatih/color
// global is kept in sync so log prefixes follow the same setting.
func SetColorMode(mode string, out *os.File) {
	switch mode {
	case "always":
		colorEnabled = true
	case "never":
		colorEnabled = false
	default:
		_, noColor := os.LookupEnv("NO_COLOR")
		colorEnabled = !noColor &&
			(isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()))
	}
	color.NoColor = !colorEnabled
}

// ColorEnabled reports whether styled output should be rendered.
func ColorEnabled() bool {
	return colorEnabled
}

// Render applies s to text when color is enabled, otherwise returns
// text unchanged.
func Render(s lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return s.Render(text)
}
