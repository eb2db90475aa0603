package tabular

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/arthur-debert/veneer/pkg/tags"
	"github.com/arthur-debert/veneer/pkg/textfmt"
)

// cellText converts a raw value to its cell string, substituting the
// column's null representation for nil.
func cellText(value any, col Column) string {
	if value == nil {
		return col.NullRepr
	}
	return cast.ToString(value)
}

// formatCell fits one value into width and returns the cell's lines.
// Cells produce multiple lines only under wrap overflow.
func formatCell(value any, col Column, width int) []string {
	if len(col.Sub) > 0 {
		return formatSubCells(value, col, width)
	}

	text := cellText(value, col)
	lines := fitCell(text, col, width)

	styleName := col.Style
	if col.StyleFromValue {
		styleName = tags.StripTags(text)
	}
	if styleName == "" {
		return lines
	}
	for i, line := range lines {
		lines[i] = "[" + styleName + "]" + line + "[/" + styleName + "]"
	}
	return lines
}

func fitCell(text string, col Column, width int) []string {
	visible := textfmt.DisplayWidth(text)
	if visible <= width && col.Overflow.Kind != OverflowExpand {
		return []string{textfmt.Pad(text, width, col.Align)}
	}

	switch col.Overflow.Kind {
	case OverflowWrap:
		lines := textfmt.Wrap(text, width, col.Overflow.Indent)
		for i, line := range lines {
			lines[i] = textfmt.Pad(line, width, col.Align)
		}
		return lines
	case OverflowClip:
		return []string{textfmt.Pad(textfmt.Clip(text, width), width, col.Align)}
	case OverflowExpand:
		return []string{text}
	default:
		cut := textfmt.Truncate(text, width, col.Overflow.At, col.Overflow.Marker)
		return []string{textfmt.Pad(cut, width, col.Align)}
	}
}

// formatSubCells lays the value, an ordered list, across the column's
// sub-columns inside the parent's resolved width.
func formatSubCells(value any, col Column, width int) []string {
	values, err := toSlice(value)
	if err != nil {
		values = []any{value}
	}

	overhead := Overhead(len(col.Sub), "", col.SubSeparator, "")
	content := make([]int, len(col.Sub))
	for i := range col.Sub {
		if i < len(values) {
			content[i] = textfmt.DisplayWidth(cellText(values[i], col.Sub[i]))
		}
	}
	geo := Solve(col.Sub, width, overhead, content)

	cells := make([][]string, len(col.Sub))
	for i, sub := range col.Sub {
		var v any
		if i < len(values) {
			v = values[i]
		}
		cells[i] = formatCell(v, sub, geo.Widths[i])
	}
	return joinCells(cells, geo.Widths, "", col.SubSeparator, "")
}

// joinCells merges per-column line stacks into full output lines. Rows
// whose cells produced different line counts are squared off by padding
// short cells with spaces of their width.
func joinCells(cells [][]string, widths []int, prefix, separator, suffix string) []string {
	height := 1
	for _, lines := range cells {
		if len(lines) > height {
			height = len(lines)
		}
	}

	out := make([]string, 0, height)
	for line := 0; line < height; line++ {
		parts := make([]string, len(cells))
		for i, lines := range cells {
			if line < len(lines) {
				parts[i] = lines[line]
			} else {
				parts[i] = strings.Repeat(" ", widths[i])
			}
		}
		out = append(out, prefix+strings.Join(parts, separator)+suffix)
	}
	return out
}
