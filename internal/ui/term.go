package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Course codes: bold cyan
	colorCode = color.New(color.FgCyan, color.Bold)

	// Successful changes to the plan
	colorOK = color.New(color.FgGreen)

	// Resolution failures the user can act on
	colorWarn = color.New(color.FgYellow)

	// Overlapping sections
	colorConflict = color.New(color.FgRed, color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatCode(s string) string {
	return colorCode.Sprint(s)
}

func formatOK(s string) string {
	return colorOK.Sprint(s)
}

func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

func formatConflict(s string) string {
	return colorConflict.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
