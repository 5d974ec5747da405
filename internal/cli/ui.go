package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - prologues, warnings
	colorRed    = lipgloss.Color("167") // Soft red - failures
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for passing results.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleFailure for failing results.
	StyleFailure = lipgloss.NewStyle().Foreground(colorRed)

	// StyleWarning for prologues and warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"

	// markPass and markFail are the result glyphs make output is grepped for.
	markPass = "✔"
	markFail = "✝"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printCommand prints a command line, as shown by dry runs.
func printCommand(w io.Writer, line string) {
	fmt.Fprintln(w, styleCommand.Render(line))
}

// =============================================================================
// Result Marks
// =============================================================================

// printPrologue prints "title: " or "title [case]: " without a newline.
func printPrologue(w io.Writer, title, testCase string) {
	if testCase != "" {
		fmt.Fprint(w, StyleWarning.Render(fmt.Sprintf("%s [%s]: ", title, testCase)))
		return
	}
	fmt.Fprint(w, StyleWarning.Render(title+": "))
}

// printMark prints label followed by a space, green when ok and red
// otherwise. An empty label prints the pass or fail glyph.
func printMark(w io.Writer, label string, ok bool) {
	if ok {
		if label == "" {
			label = markPass
		}
		fmt.Fprint(w, StyleSuccess.Render(label)+" ")
		return
	}
	if label == "" {
		label = markFail
	}
	fmt.Fprint(w, StyleFailure.Render(label)+" ")
}

// printScore prints a similarity percentage, green when it passes.
func printScore(w io.Writer, score int, ok bool) {
	printMark(w, fmt.Sprintf("%d%%", score), ok)
}

// printNewline prints an empty line.
func printNewline(w io.Writer) {
	fmt.Fprintln(w)
}
