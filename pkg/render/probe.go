package render

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/arthur-debert/veneer/pkg/style"
)

// DefaultWidth is the line width assumed when the output is not a
// terminal or its size cannot be determined.
const DefaultWidth = 80

// SupportsColor reports whether styled output is appropriate on the
// given file. It honors NO_COLOR, requires a terminal, and checks the
// terminal's color profile.
func SupportsColor(output *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if output == nil {
		return false
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// DetectColorMode probes the terminal background and picks the theme
// specialization to use. Dark is the fallback when the background
// cannot be determined.
func DetectColorMode() style.ColorMode {
	if termenv.HasDarkBackground() {
		return style.ColorDark
	}
	return style.ColorLight
}

// TerminalWidth returns the column count of the terminal behind the
// given file, or DefaultWidth when the output is not a terminal.
func TerminalWidth(output *os.File) int {
	if output == nil {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(output.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}
