package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/jadwal/internal/conflict"
)

// Color definitions for consistent styling across the UI.
var (
	// Room conflicts: yellow, the room can be swapped
	colorRoom = color.New(color.FgYellow)

	// Lecturer conflicts: magenta, a person is double-booked
	colorLecturer = color.New(color.FgMagenta)

	// Rejections and error summaries
	colorWarn = color.New(color.FgRed, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Accepted changes and conflict-free status
	colorOK = color.New(color.FgGreen)

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

// formatKind colors text by conflict kind.
func formatKind(k conflict.Kind, s string) string {
	if k == conflict.KindRoom {
		return colorRoom.Sprint(s)
	}
	return colorLecturer.Sprint(s)
}

// formatWarn formats text for rejections.
func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatOK formats text for accepted changes.
func formatOK(s string) string {
	return colorOK.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
