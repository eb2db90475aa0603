package tabular

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/arthur-debert/veneer/pkg/errors"
	"github.com/arthur-debert/veneer/pkg/textfmt"
)

// BorderStyle selects the box-drawing characters around a table.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderAscii
	BorderLight
	BorderHeavy
	BorderDouble
	BorderRounded
)

func (b BorderStyle) String() string {
	switch b {
	case BorderNone:
		return "none"
	case BorderAscii:
		return "ascii"
	case BorderLight:
		return "light"
	case BorderHeavy:
		return "heavy"
	case BorderDouble:
		return "double"
	case BorderRounded:
		return "rounded"
	default:
		return "unknown"
	}
}

// ParseBorder converts a spec string into a BorderStyle.
func ParseBorder(s string) (BorderStyle, error) {
	switch s {
	case "none", "":
		return BorderNone, nil
	case "ascii":
		return BorderAscii, nil
	case "light":
		return BorderLight, nil
	case "heavy":
		return BorderHeavy, nil
	case "double":
		return BorderDouble, nil
	case "rounded":
		return BorderRounded, nil
	default:
		return BorderNone, errors.Newf(errors.ErrInvalidInput, "invalid border style %q", s)
	}
}

// borderChars is one border style's character set: horizontal and
// vertical strokes plus the corner and junction pieces for the top,
// middle, and bottom rules.
type borderChars struct {
	h, v       string
	tl, tt, tr string
	ml, mm, mr string
	bl, bt, br string
}

var borderSets = map[BorderStyle]borderChars{
	BorderAscii: {
		h: "-", v: "|",
		tl: "+", tt: "+", tr: "+",
		ml: "+", mm: "+", mr: "+",
		bl: "+", bt: "+", br: "+",
	},
	BorderLight: {
		h: "─", v: "│",
		tl: "┌", tt: "┬", tr: "┐",
		ml: "├", mm: "┼", mr: "┤",
		bl: "└", bt: "┴", br: "┘",
	},
	BorderHeavy: {
		h: "━", v: "┃",
		tl: "┏", tt: "┳", tr: "┓",
		ml: "┣", mm: "╋", mr: "┫",
		bl: "┗", bt: "┻", br: "┛",
	},
	BorderDouble: {
		h: "═", v: "║",
		tl: "╔", tt: "╦", tr: "╗",
		ml: "╠", mm: "╬", mr: "╣",
		bl: "╚", bt: "╩", br: "╝",
	},
	BorderRounded: {
		h: "─", v: "│",
		tl: "╭", tt: "┬", tr: "╮",
		ml: "├", mm: "┼", mr: "┤",
		bl: "╰", bt: "┴", br: "╯",
	},
}

// TableOptions configures a Table.
type TableOptions struct {
	// Separator goes between columns when the table has no border.
	// Bordered tables always separate columns with the border's
	// vertical stroke.
	Separator string

	Border BorderStyle

	// Header enables the header row built from the columns' Header
	// labels. HeaderStyle optionally names a registry style the labels
	// are wrapped in.
	Header      bool
	HeaderStyle string

	// RowSeparator draws a rule between data rows in RenderAll.
	RowSeparator bool

	Width int
}

// Table renders rows inside an optional border. Individual row methods
// use the geometry solved at construction; RenderAll re-solves against
// the actual content so bounded columns hug their data.
type Table struct {
	f    *Formatter
	opts TableOptions
}

// NewTable builds a table over cols.
func NewTable(cols []Column, opts TableOptions) *Table {
	return &Table{f: NewFormatter(cols, rowOptions(opts)), opts: opts}
}

// rowOptions derives the row formatter options for a table: bordered
// tables get the vertical stroke as prefix, suffix, and separator.
func rowOptions(opts TableOptions) Options {
	o := Options{Separator: opts.Separator, Width: opts.Width}
	if chars, ok := borderSets[opts.Border]; ok {
		o.Prefix = chars.v + " "
		o.Suffix = " " + chars.v
		o.Separator = " " + chars.v + " "
	}
	return o
}

// Widths returns the resolved per-column content widths.
func (t *Table) Widths() []int { return t.f.Widths() }

// Row formats one data row from a positional value list.
func (t *Table) Row(values any) string { return t.f.Row(values) }

// RowFrom formats one data row from an object.
func (t *Table) RowFrom(obj any) string { return t.f.RowFrom(obj) }

// HeaderRow renders the column labels as a row. Labels respect each
// column's alignment and are truncated to fit.
func (t *Table) HeaderRow() string {
	cells := make([][]string, len(t.f.cols))
	for i, col := range t.f.cols {
		label := Column{Align: col.Align, Overflow: TruncateOverflow()}
		lines := fitCell(col.Header, label, t.f.geo.Widths[i])
		if t.opts.HeaderStyle != "" {
			for j, line := range lines {
				lines[j] = "[" + t.opts.HeaderStyle + "]" + line + "[/" + t.opts.HeaderStyle + "]"
			}
		}
		cells[i] = lines
	}
	lines := joinCells(cells, t.f.geo.Widths, t.f.opts.Prefix, t.f.opts.Separator, t.f.opts.Suffix)
	return strings.Join(lines, "\n")
}

// TopBorder renders the table's opening rule, or "" without a border.
func (t *Table) TopBorder() string { return t.rule(func(c borderChars) (string, string, string) { return c.tl, c.tt, c.tr }) }

// SeparatorRow renders the rule drawn between rows, or "" without a
// border.
func (t *Table) SeparatorRow() string {
	return t.rule(func(c borderChars) (string, string, string) { return c.ml, c.mm, c.mr })
}

// BottomBorder renders the table's closing rule, or "" without a border.
func (t *Table) BottomBorder() string {
	return t.rule(func(c borderChars) (string, string, string) { return c.bl, c.bt, c.br })
}

func (t *Table) rule(pick func(borderChars) (left, tee, right string)) string {
	chars, ok := borderSets[t.opts.Border]
	if !ok {
		return ""
	}
	left, tee, right := pick(chars)
	segments := make([]string, len(t.f.geo.Widths))
	for i, w := range t.f.geo.Widths {
		segments[i] = strings.Repeat(chars.h, w+2)
	}
	return left + strings.Join(segments, tee) + right
}

// RenderAll renders the whole table: opening rule, header, data rows
// with optional separators, closing rule. Each row element may be a
// positional list or an object keyed like RowFrom.
func (t *Table) RenderAll(rows any) string {
	items, err := toSlice(rows)
	if err != nil {
		items = []any{rows}
	}

	valueRows := make([][]any, 0, len(items))
	for _, item := range items {
		if m, err := cast.ToStringMapE(item); err == nil {
			valueRows = append(valueRows, t.f.valuesFrom(m))
			continue
		}
		vals, err := toSlice(item)
		if err != nil {
			vals = []any{item}
		}
		valueRows = append(valueRows, vals)
	}

	content := measureContent(t.f.cols, valueRows)
	if t.opts.Header {
		for i, col := range t.f.cols {
			if w := textfmt.DisplayWidth(col.Header); w > content[i] {
				content[i] = w
			}
		}
	}
	sized := &Table{
		f:    newFormatterSized(t.f.cols, rowOptions(t.opts), content),
		opts: t.opts,
	}

	var lines []string
	push := func(s string) {
		if s != "" {
			lines = append(lines, s)
		}
	}

	push(sized.TopBorder())
	if t.opts.Header {
		push(sized.HeaderRow())
		push(sized.SeparatorRow())
	}
	for i, vals := range valueRows {
		if i > 0 && t.opts.RowSeparator {
			push(sized.SeparatorRow())
		}
		lines = append(lines, strings.Join(sized.f.formatRow(vals), "\n"))
	}
	push(sized.BottomBorder())

	return strings.Join(lines, "\n")
}
