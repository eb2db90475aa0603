// Package style defines the style descriptors, registries and themes
// behind veneer's tag-based terminal styling.
//
// Style names are used as bracket tags in templates:
//
//	[success]Operation completed[/success]
//	[header]Packages[/header]
//
// A Registry maps semantic names to descriptors (or aliases to other
// names); a Theme groups a base registry with optional light and dark
// specializations; resolving a theme for a color mode produces the
// flattened, alias-free Resolved set the tag renderer works from.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Style is a terminal style descriptor. Colors accept anything
// lipgloss.Color does: named ANSI colors, 256-palette numbers, or
// #rrggbb hex values. The zero value styles nothing.
type Style struct {
	Foreground string
	Background string
	Bold       bool
	Dim        bool
	Italic     bool
	Underline  bool

	// Force applies the style even when the terminal reports no
	// styling support.
	Force bool
}

// IsZero reports whether the descriptor carries no attributes.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Merge overlays inner on s and returns the composition. Single-valued
// attributes from inner win; boolean attributes accumulate.
func (s Style) Merge(inner Style) Style {
	out := s
	if inner.Foreground != "" {
		out.Foreground = inner.Foreground
	}
	if inner.Background != "" {
		out.Background = inner.Background
	}
	out.Bold = out.Bold || inner.Bold
	out.Dim = out.Dim || inner.Dim
	out.Italic = out.Italic || inner.Italic
	out.Underline = out.Underline || inner.Underline
	out.Force = out.Force || inner.Force
	return out
}

// Compile builds the lipgloss style for this descriptor under the
// given renderer. The renderer's color profile decides how colors
// degrade.
func (s Style) Compile(r *lipgloss.Renderer) lipgloss.Style {
	st := r.NewStyle()
	if s.Foreground != "" {
		st = st.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		st = st.Background(lipgloss.Color(s.Background))
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Dim {
		st = st.Faint(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	return st
}
