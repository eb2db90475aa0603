// Package textfmt provides width-aware text fitting for terminal output.
//
// All measurement is done on visible text: tag markup is stripped before
// measuring and Unicode display widths are used throughout, so East Asian
// wide characters and combining marks line up correctly. Padding keeps
// the original markup intact; truncation, clipping, and wrapping work on
// the visible text.
package textfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/arthur-debert/veneer/pkg/errors"
	"github.com/arthur-debert/veneer/pkg/tags"
)

// Align selects which edge padding pushes text toward.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "unknown"
	}
}

// ParseAlign converts a spec string into an Align.
func ParseAlign(s string) (Align, error) {
	switch s {
	case "left", "":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	case "center":
		return AlignCenter, nil
	default:
		return AlignLeft, errors.Newf(errors.ErrInvalidInput, "invalid alignment %q", s)
	}
}

// DisplayWidth returns the visible width of s: tags are stripped and the
// remainder measured in terminal cells.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(tags.StripTags(s))
}

// Pad fits s into width by adding spaces on the side the alignment
// leaves free. Markup in s is preserved and excluded from measurement.
// Text already at or over width is returned unchanged.
func Pad(s string, width int, align Align) string {
	gap := width - DisplayWidth(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

// PadLeft inserts spaces before s until its visible width reaches width.
func PadLeft(s string, width int) string {
	return Pad(s, width, AlignRight)
}

// PadRight appends spaces after s until its visible width reaches width.
func PadRight(s string, width int) string {
	return Pad(s, width, AlignLeft)
}

// PadCenter centers s in width, favoring the right side with odd gaps.
func PadCenter(s string, width int) string {
	return Pad(s, width, AlignCenter)
}
