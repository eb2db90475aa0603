package testutil

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/veneer/pkg/style"
)

// Theme returns a small fixture theme: attribute styles, one color,
// and one alias, enough to exercise every render path.
func Theme() *style.Theme {
	th := style.NewTheme("fixture")
	th.Base.Add("bold", style.Style{Bold: true})
	th.Base.Add("em", style.Style{Italic: true})
	th.Base.Add("red", style.Style{Foreground: "#FF0000"})
	th.Base.AddAlias("danger", "red")
	return th
}

// TrueColor returns a lipgloss renderer pinned to full color.
func TrueColor() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

// Ascii returns a lipgloss renderer that strips all styling.
func Ascii() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

// Bold renders text bold through the pinned TrueColor renderer,
// producing the exact bytes a styled assertion should expect.
func Bold(text string) string {
	return TrueColor().NewStyle().Bold(true).Render(text)
}

// Fg renders text in a foreground color through the pinned renderer.
func Fg(hex, text string) string {
	return TrueColor().NewStyle().Foreground(lipgloss.Color(hex)).Render(text)
}
