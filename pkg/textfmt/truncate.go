package textfmt

import (
	"github.com/mattn/go-runewidth"

	"github.com/arthur-debert/veneer/pkg/errors"
	"github.com/arthur-debert/veneer/pkg/tags"
)

// DefaultMarker is the ellipsis appended where text was cut.
const DefaultMarker = "…"

// TruncatePos selects where Truncate removes text.
type TruncatePos int

const (
	// TruncateEnd keeps the head of the text.
	TruncateEnd TruncatePos = iota
	// TruncateStart keeps the tail.
	TruncateStart
	// TruncateMiddle keeps both edges and cuts the middle.
	TruncateMiddle
)

func (p TruncatePos) String() string {
	switch p {
	case TruncateEnd:
		return "end"
	case TruncateStart:
		return "start"
	case TruncateMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// ParseTruncatePos converts a spec string into a TruncatePos.
func ParseTruncatePos(s string) (TruncatePos, error) {
	switch s {
	case "end", "":
		return TruncateEnd, nil
	case "start":
		return TruncateStart, nil
	case "middle":
		return TruncateMiddle, nil
	default:
		return TruncateEnd, errors.Newf(errors.ErrInvalidInput, "invalid truncate position %q", s)
	}
}

// Truncate fits s into width, marking the cut with marker. The text is
// reduced to its visible form first, so markup does not survive
// truncation. Text that already fits is returned stripped but whole.
func Truncate(s string, width int, pos TruncatePos, marker string) string {
	plain := tags.StripTags(s)
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(plain) <= width {
		return plain
	}

	markerWidth := runewidth.StringWidth(marker)
	avail := width - markerWidth
	if avail < 0 {
		return clipString(marker, width)
	}

	switch pos {
	case TruncateStart:
		return marker + cutSuffix(plain, avail)
	case TruncateMiddle:
		head := (avail + 1) / 2
		return cutPrefix(plain, head) + marker + cutSuffix(plain, avail-head)
	default:
		return cutPrefix(plain, avail) + marker
	}
}

// Clip hard-cuts the visible text of s at width, with no marker.
func Clip(s string, width int) string {
	return clipString(tags.StripTags(s), width)
}

func clipString(plain string, width int) string {
	if width <= 0 {
		return ""
	}
	return cutPrefix(plain, width)
}

// cutPrefix returns the longest prefix of s whose display width does not
// exceed w. Wide runes that would straddle the boundary are dropped.
func cutPrefix(s string, w int) string {
	if w <= 0 {
		return ""
	}
	total := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if total+rw > w {
			return s[:i]
		}
		total += rw
	}
	return s
}

// cutSuffix returns the longest suffix of s whose display width does not
// exceed w.
func cutSuffix(s string, w int) string {
	if w <= 0 {
		return ""
	}
	runes := []rune(s)
	total := 0
	for i := len(runes) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(runes[i])
		if total+rw > w {
			return string(runes[i+1:])
		}
		total += rw
	}
	return s
}
