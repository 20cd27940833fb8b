package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// WelcomeInfo contains information to display in the welcome screen.
type WelcomeInfo struct {
	// Version is the strata version string
	Version string
	// Graphics reports whether the plotting surface is active
	Graphics bool
	// Datasets is the number of dataset descriptors found on startup
	Datasets int
}

// tips is the list of tips to display in the welcome screen.
// A "tip of the day" is selected based on the current date.
var tips = []string{
	// Completion
	"press Tab inside ds[\"...\"] to list the dataset's fields",
	"field completion includes derived fields like velocity_magnitude",
	"press Tab after a dot to list an object's attributes",
	"press Esc to cancel an in-progress completion",

	// Navigation and history
	"press Up/Down to navigate command history",
	"press Ctrl+Y to copy the last result to the clipboard",
	"press Ctrl+D on an empty line to exit",

	// Data
	"use load(\"path.yaml\") to open a dataset descriptor",
	"ds.sphere(0.25) selects cells within a radius of the domain center",
	"ds.region(x0, y0, z0, x1, y1, z1) selects an axis-aligned box",
	"sp[\"density\"] returns the field values for a selection",
	"fields(ds) lists every field a dataset can produce",

	// Configuration
	"you can customize your prompt in ~/.strata/config.yaml",
	"set log_level: debug in the config for troubleshooting",
	"set STRATA_DISPLAY to enable the plot() builtin",

	// Scripts
	"run strata scripts with: strata script.st",
	"use strata -c 'expr' for one-off evaluation",

	// General
	"type help for an overview of the builtins",
}

// ASCII art logo - compact version that fits well in terminals.
var strataLogo = []string{
	"     _             _        ",
	" ___| |_ _ __ __ _| |_ __ _ ",
	"/ __| __| '__/ _` | __/ _` |",
	"\\__ \\ |_| | | (_| | || (_| |",
	"|___/\\__|_|  \\__,_|\\__\\__,_|",
}

// getTipOfTheDay returns a tip based on the current date.
// The same tip is shown for the entire day, changing at midnight.
func getTipOfTheDay() string {
	if len(tips) == 0 {
		return ""
	}
	now := time.Now()
	// Simple date hash. The formula is wrong but good enough for this purpose.
	daysSinceEpoch := now.Year()*365 + int(now.Month())*31 + now.Day()
	index := daysSinceEpoch % len(tips)
	return tips[index]
}

// RenderWelcome renders the welcome screen to the given writer. The screen
// shows the logo on the left and session info on the right, falling back to a
// single column on narrow terminals.
func RenderWelcome(w io.Writer, info WelcomeInfo, termWidth int) {
	titleStyle := lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	logoStyle := lipgloss.NewStyle().Foreground(ColorCyan)
	labelStyle := lipgloss.NewStyle().Foreground(ColorGray)
	valueStyle := lipgloss.NewStyle().Foreground(ColorCyan)
	dimStyle := lipgloss.NewStyle().Foreground(ColorGray).Italic(true)

	logoWidth := 28
	minGap := 4
	maxInfoWidth := 40

	var infoLines []string

	infoLines = append(infoLines, titleStyle.Render("The Layered Analysis Shell"))
	infoLines = append(infoLines, "")

	if info.Version != "" && info.Version != "dev" {
		infoLines = append(infoLines, labelStyle.Render("version:  ")+valueStyle.Render(info.Version))
	} else if info.Version == "dev" {
		infoLines = append(infoLines, labelStyle.Render("version:  ")+dimStyle.Render("development"))
	}

	if info.Graphics {
		infoLines = append(infoLines, labelStyle.Render("graphics: ")+valueStyle.Render("active"))
	} else {
		infoLines = append(infoLines, labelStyle.Render("graphics: ")+dimStyle.Render("inactive"))
	}

	if info.Datasets > 0 {
		infoLines = append(infoLines, labelStyle.Render("datasets: ")+valueStyle.Render(fmt.Sprintf("%d found", info.Datasets)))
	}

	numLines := len(strataLogo)
	if len(infoLines) > numLines {
		numLines = len(infoLines)
	}

	infoWidth := termWidth - logoWidth - minGap
	if infoWidth > maxInfoWidth {
		infoWidth = maxInfoWidth
	}
	tip := getTipOfTheDay()

	if infoWidth < 20 {
		// Terminal too narrow, just show info without the logo.
		for _, line := range infoLines {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
		if tip != "" {
			fmt.Fprintln(w, dimStyle.Render("tip: "+tip))
		}
		fmt.Fprintln(w)
		return
	}

	var output strings.Builder
	output.WriteString("\n")

	for i := 0; i < numLines; i++ {
		var logoLine string
		if i < len(strataLogo) {
			logoLine = logoStyle.Render(strataLogo[i])
		} else {
			logoLine = strings.Repeat(" ", logoWidth)
		}

		var infoLine string
		if i < len(infoLines) {
			infoLine = infoLines[i]
		}

		gap := strings.Repeat(" ", minGap)
		output.WriteString(logoLine + gap + infoLine + "\n")
	}

	output.WriteString("\n")
	if tip != "" {
		output.WriteString(dimStyle.Render("tip: "+tip) + "\n")
	}
	output.WriteString("\n")

	fmt.Fprint(w, output.String())
}
