package textfmt

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/arthur-debert/veneer/pkg/tags"
)

// Wrap breaks the visible text of s into lines no wider than width.
// Breaking prefers word boundaries; words longer than the line are
// hard-broken. Continuation lines are prefixed with indent spaces and
// their content narrowed so the prefixed line still fits width.
func Wrap(s string, width int, indent int) []string {
	plain := tags.StripTags(s)
	if width <= 0 {
		return []string{plain}
	}

	limit := width
	if indent > 0 {
		limit = width - indent
		if limit < 1 {
			limit = 1
		}
	}

	wrapped := wrap.String(wordwrap.String(plain, limit), limit)
	lines := strings.Split(wrapped, "\n")
	if indent <= 0 {
		return lines
	}

	prefix := strings.Repeat(" ", indent)
	for i := 1; i < len(lines); i++ {
		lines[i] = prefix + lines[i]
	}
	return lines
}
