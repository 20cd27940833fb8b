// Package render provides terminal rendering for the REPL: the welcome
// screen and the shared output styles.
package render

import (
	"github.com/charmbracelet/lipgloss"
)

// ANSI colors used across the REPL surface.
const (
	ColorCyan   = lipgloss.Color("12") // Prompt accents, banner
	ColorYellow = lipgloss.Color("11") // Highlights
	ColorGreen  = lipgloss.Color("10") // Success indicator
	ColorRed    = lipgloss.Color("9")  // Error indicator
	ColorGray   = lipgloss.Color("8")  // Dim/secondary text
)

var (
	// ResultStyle is used for evaluated expression results.
	ResultStyle = lipgloss.NewStyle().Foreground(ColorCyan)

	// ErrorStyle is used for evaluation and load errors.
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorRed)

	// SuccessStyle is used for confirmation messages.
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorGreen)

	// DimStyle is used for secondary information such as tips and timing.
	DimStyle = lipgloss.NewStyle().Foreground(ColorGray)
)

// RenderError formats an error for display in the session.
func RenderError(err error) string {
	return ErrorStyle.Render("error: " + err.Error())
}
