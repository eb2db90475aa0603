package tabular

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/arthur-debert/veneer/pkg/textfmt"
)

// Options configures a Formatter.
type Options struct {
	// Separator goes between adjacent columns. Defaults to one space.
	Separator string

	// Prefix and Suffix decorate each line. Empty for plain rows; table
	// borders set these to the vertical edge pieces.
	Prefix string
	Suffix string

	// Width is the total line width the solver works against. Defaults
	// to DefaultTotalWidth.
	Width int
}

func (o Options) withDefaults() Options {
	if o.Separator == "" {
		o.Separator = " "
	}
	if o.Width <= 0 {
		o.Width = DefaultTotalWidth
	}
	return o
}

// Formatter renders value rows as aligned text lines. Geometry is
// resolved once at construction, so every row lines up.
type Formatter struct {
	cols []Column
	opts Options
	geo  Geometry
}

// NewFormatter solves the layout for cols and returns a row formatter.
func NewFormatter(cols []Column, opts Options) *Formatter {
	opts = opts.withDefaults()
	overhead := Overhead(len(cols), opts.Prefix, opts.Separator, opts.Suffix)
	return &Formatter{
		cols: cols,
		opts: opts,
		geo:  Solve(cols, opts.Width, overhead, nil),
	}
}

// newFormatterSized is NewFormatter with pre-measured content widths.
func newFormatterSized(cols []Column, opts Options, content []int) *Formatter {
	opts = opts.withDefaults()
	overhead := Overhead(len(cols), opts.Prefix, opts.Separator, opts.Suffix)
	return &Formatter{
		cols: cols,
		opts: opts,
		geo:  Solve(cols, opts.Width, overhead, content),
	}
}

// Widths returns the resolved per-column content widths.
func (f *Formatter) Widths() []int {
	out := make([]int, len(f.geo.Widths))
	copy(out, f.geo.Widths)
	return out
}

// Width returns the total line width the formatter lays out against.
func (f *Formatter) Width() int {
	return f.opts.Width
}

// Row formats one row from a positional value list. Values beyond the
// column count are ignored; missing values render as null. Cells that
// wrap make the result span multiple lines.
func (f *Formatter) Row(values any) string {
	vals, err := toSlice(values)
	if err != nil {
		vals = []any{values}
	}
	return strings.Join(f.formatRow(vals), "\n")
}

// RowFrom formats one row from an object, selecting each column's value
// by its key (or, when no key is set, its lowercased header).
func (f *Formatter) RowFrom(obj any) string {
	return strings.Join(f.formatRow(f.valuesFrom(obj)), "\n")
}

func (f *Formatter) valuesFrom(obj any) []any {
	m, err := cast.ToStringMapE(obj)
	if err != nil {
		return nil
	}
	vals := make([]any, len(f.cols))
	for i, col := range f.cols {
		key := col.Key
		if key == "" {
			key = strings.ToLower(col.Header)
		}
		vals[i] = m[key]
	}
	return vals
}

func (f *Formatter) formatRow(vals []any) []string {
	cells := make([][]string, len(f.cols))
	for i, col := range f.cols {
		var v any
		if i < len(vals) {
			v = vals[i]
		}
		cells[i] = formatCell(v, col, f.geo.Widths[i])
	}

	if !f.anchored() {
		return joinCells(cells, f.geo.Widths, f.opts.Prefix, f.opts.Separator, f.opts.Suffix)
	}
	return f.joinAnchored(cells)
}

func (f *Formatter) anchored() bool {
	for _, col := range f.cols {
		if col.RightAnchor {
			return true
		}
	}
	return false
}

// joinAnchored lays left-anchored cells from the left edge and
// right-anchored cells against the right edge, with flexible space
// between the two groups. The groups never overlap: when the content
// would collide, the right group shifts out past the requested width
// instead.
func (f *Formatter) joinAnchored(cells [][]string) []string {
	var (
		leftCells, rightCells   [][]string
		leftWidths, rightWidths []int
	)
	for i, col := range f.cols {
		if col.RightAnchor {
			rightCells = append(rightCells, cells[i])
			rightWidths = append(rightWidths, f.geo.Widths[i])
		} else {
			leftCells = append(leftCells, cells[i])
			leftWidths = append(leftWidths, f.geo.Widths[i])
		}
	}

	var leftLines, rightLines []string
	if len(leftCells) > 0 {
		leftLines = joinCells(leftCells, leftWidths, f.opts.Prefix, f.opts.Separator, "")
	} else if f.opts.Prefix != "" {
		leftLines = []string{f.opts.Prefix}
	}
	rightLines = joinCells(rightCells, rightWidths, "", f.opts.Separator, f.opts.Suffix)

	minGap := 0
	if len(leftCells) > 0 {
		minGap = textfmt.DisplayWidth(f.opts.Separator)
	}

	height := len(rightLines)
	if len(leftLines) > height {
		height = len(leftLines)
	}
	out := make([]string, 0, height)
	for i := 0; i < height; i++ {
		var left, right string
		if i < len(leftLines) {
			left = leftLines[i]
		} else if len(leftLines) > 0 {
			left = strings.Repeat(" ", textfmt.DisplayWidth(leftLines[0]))
		}
		if i < len(rightLines) {
			right = rightLines[i]
		} else {
			right = strings.Repeat(" ", textfmt.DisplayWidth(rightLines[0]))
		}
		gap := f.opts.Width - textfmt.DisplayWidth(left) - textfmt.DisplayWidth(right)
		if gap < minGap {
			gap = minGap
		}
		out = append(out, left+strings.Repeat(" ", gap)+right)
	}
	return out
}
