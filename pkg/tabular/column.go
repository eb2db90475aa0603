// Package tabular lays out rows and tables for terminal output.
//
// Columns are described by width specs (fixed, fill, fractional, or
// bounded), an overflow strategy, alignment, and optional styling. A
// solver distributes the requested total width across columns, and
// formatters turn value rows into aligned text lines, with optional
// box-drawing borders.
//
// Cell output carries tag markup, not ANSI codes. Rendering the final
// styling is the tag renderer's job, which keeps layout math independent
// of the terminal.
package tabular

import (
	"github.com/arthur-debert/veneer/pkg/textfmt"
)

// WidthKind discriminates the width spec variants.
type WidthKind int

const (
	// WidthBounded sizes the column from its content, clamped to
	// [Min, Max]. This is the default for columns with no width.
	WidthBounded WidthKind = iota
	// WidthFixed gives the column exactly N cells.
	WidthFixed
	// WidthFill lets the column share leftover space equally.
	WidthFill
	// WidthFraction lets the column take N parts of the leftover space.
	WidthFraction
)

// Width is a column width spec.
type Width struct {
	Kind WidthKind

	// N is the cell count for WidthFixed or the part count for
	// WidthFraction.
	N int

	// Min and Max clamp WidthBounded columns. Max 0 means unbounded.
	Min int
	Max int
}

// Fixed returns a fixed-width spec.
func Fixed(n int) Width { return Width{Kind: WidthFixed, N: n} }

// Fill returns a spec that shares leftover space, counting as one part.
func Fill() Width { return Width{Kind: WidthFill, N: 1} }

// Fraction returns a spec taking k parts of the leftover space.
func Fraction(k int) Width { return Width{Kind: WidthFraction, N: k} }

// Bounded returns a content-sized spec clamped to [min, max]. A max of 0
// leaves the column unbounded above.
func Bounded(min, max int) Width { return Width{Kind: WidthBounded, Min: min, Max: max} }

// OverflowKind discriminates the overflow strategies.
type OverflowKind int

const (
	// OverflowTruncate cuts the text and places a marker at the cut.
	OverflowTruncate OverflowKind = iota
	// OverflowWrap breaks the cell into multiple lines.
	OverflowWrap
	// OverflowClip hard-cuts with no marker.
	OverflowClip
	// OverflowExpand lets the cell exceed its column width.
	OverflowExpand
)

// Overflow describes what happens when a cell is wider than its column.
type Overflow struct {
	Kind OverflowKind

	// At and Marker configure OverflowTruncate.
	At     textfmt.TruncatePos
	Marker string

	// Indent configures OverflowWrap continuation lines.
	Indent int
}

// TruncateOverflow is the default strategy: cut at the end, mark with an
// ellipsis.
func TruncateOverflow() Overflow {
	return Overflow{Kind: OverflowTruncate, At: textfmt.TruncateEnd, Marker: textfmt.DefaultMarker}
}

// Column is a fully parsed column spec.
type Column struct {
	Width    Width
	Overflow Overflow
	Align    textfmt.Align

	// RightAnchor pushes the column to the right edge of the requested
	// width instead of packing it after the left-anchored columns.
	RightAnchor bool

	// Style names a registry style the cell content is wrapped in.
	// StyleFromValue instead uses the cell's own visible content as the
	// style name, which suits enum-like values.
	Style          string
	StyleFromValue bool

	// NullRepr substitutes for nil values.
	NullRepr string

	// Header labels the column in table header rows.
	Header string

	// Key selects the value for this column when rows are built from
	// objects rather than positional lists.
	Key string

	// Sub splits the cell value, an ordered list, across sub-columns
	// laid out inside this column's resolved width.
	Sub          []Column
	SubSeparator string
}

// NewColumn returns a column with the default spec: content-sized,
// end-truncated, left-aligned.
func NewColumn() Column {
	return Column{Overflow: TruncateOverflow()}
}
