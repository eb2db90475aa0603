package tabular

import (
	"github.com/arthur-debert/veneer/pkg/textfmt"
)

// DefaultTotalWidth is used when neither the caller nor the terminal
// supplies a width.
const DefaultTotalWidth = 80

// Geometry is the resolved layout for a column set: the total width the
// solver worked against, the per-column widths, and the decoration
// overhead that was reserved.
type Geometry struct {
	Total    int
	Widths   []int
	Overhead int
}

// Overhead returns the decoration cost for c columns: prefix, suffix,
// and a separator between each adjacent pair.
func Overhead(c int, prefix, separator, suffix string) int {
	if c == 0 {
		return textfmt.DisplayWidth(prefix) + textfmt.DisplayWidth(suffix)
	}
	return textfmt.DisplayWidth(prefix) +
		textfmt.DisplayWidth(suffix) +
		(c-1)*textfmt.DisplayWidth(separator)
}

// Solve distributes total width across cols. content carries the
// measured visible width of each column's widest cell and sizes
// WidthBounded columns; a nil or short content slice counts as zero
// measured width, leaving bounded columns at their minimum.
//
// Fixed columns always get their width. Bounded columns get their
// clamped content width, shrinking toward their minimum in reverse
// declaration order when space runs out. Whatever remains is split
// between fill and fraction columns by parts, leftover cells going to
// the leftmost first.
func Solve(cols []Column, total, overhead int, content []int) Geometry {
	available := total - overhead
	if available < 0 {
		available = 0
	}

	widths := make([]int, len(cols))
	flexible := make([]int, 0, len(cols))
	bounded := make([]int, 0, len(cols))
	assigned := 0

	for i, col := range cols {
		switch col.Width.Kind {
		case WidthFixed:
			widths[i] = col.Width.N
			assigned += widths[i]
		case WidthBounded:
			w := 0
			if i < len(content) {
				w = content[i]
			}
			if w < col.Width.Min {
				w = col.Width.Min
			}
			if col.Width.Max > 0 && w > col.Width.Max {
				w = col.Width.Max
			}
			widths[i] = w
			assigned += w
			bounded = append(bounded, i)
		default:
			flexible = append(flexible, i)
		}
	}

	remaining := available - assigned
	if remaining <= 0 {
		// Flexible columns collapse; bounded columns give back width
		// down to their minimum, last declared first.
		deficit := -remaining
		for i := len(bounded) - 1; i >= 0 && deficit > 0; i-- {
			idx := bounded[i]
			slack := widths[idx] - cols[idx].Width.Min
			if slack <= 0 {
				continue
			}
			if slack > deficit {
				slack = deficit
			}
			widths[idx] -= slack
			deficit -= slack
		}
		return Geometry{Total: total, Widths: widths, Overhead: overhead}
	}

	totalParts := 0
	for _, idx := range flexible {
		totalParts += cols[idx].Width.N
	}
	if totalParts > 0 {
		granted := 0
		for _, idx := range flexible {
			w := remaining * cols[idx].Width.N / totalParts
			widths[idx] = w
			granted += w
		}
		for _, idx := range flexible {
			if granted >= remaining {
				break
			}
			widths[idx]++
			granted++
		}
	}
	return Geometry{Total: total, Widths: widths, Overhead: overhead}
}

// measureContent returns the widest visible cell width per column over
// all rows. Rows shorter than the column set contribute nothing to the
// missing columns.
func measureContent(cols []Column, rows [][]any) []int {
	content := make([]int, len(cols))
	for _, row := range rows {
		for i := range cols {
			if i >= len(row) {
				continue
			}
			w := textfmt.DisplayWidth(cellText(row[i], cols[i]))
			if w > content[i] {
				content[i] = w
			}
		}
	}
	return content
}
