package tags

import (
	"strings"

	"github.com/arthur-debert/veneer/pkg/style"
)

// Transform selects what the renderer does with tags.
type Transform int

const (
	// Apply replaces known tags with ANSI styling.
	Apply Transform = iota
	// Remove drops every tag and keeps only literal text.
	Remove
	// Keep preserves all tags verbatim.
	Keep
)

func (t Transform) String() string {
	switch t {
	case Apply:
		return "apply"
	case Remove:
		return "remove"
	case Keep:
		return "keep"
	default:
		return "unknown"
	}
}

// UnknownPolicy controls how Apply treats well-formed tags whose name is
// not in the style registry. Remove and Keep ignore it.
type UnknownPolicy int

const (
	// Passthrough renders unknown opens as [name?] and closes as [/name?],
	// keeping typos visible.
	Passthrough UnknownPolicy = iota
	// Strip makes unknown tags disappear silently.
	Strip
)

func (p UnknownPolicy) String() string {
	switch p {
	case Passthrough:
		return "passthrough"
	case Strip:
		return "strip"
	default:
		return "unknown"
	}
}

// UnknownTag records a well-formed tag whose name did not resolve against
// the style registry. Collected during rendering, never raised.
type UnknownTag struct {
	Name string
	Kind TokenKind
	// Start and End are byte offsets of the tag in the input.
	Start int
	End   int
}

// Renderer turns tag markup into output using a resolved style registry.
// A Renderer is immutable and safe for concurrent use.
type Renderer struct {
	styles    *style.Resolved
	transform Transform
	unknown   UnknownPolicy
}

// NewRenderer builds a renderer over styles with the given transform and
// unknown-tag policy.
func NewRenderer(styles *style.Resolved, transform Transform, unknown UnknownPolicy) *Renderer {
	return &Renderer{styles: styles, transform: transform, unknown: unknown}
}

// Render processes input and returns the transformed string. Malformed
// markup degrades to text rather than failing.
func (r *Renderer) Render(input string) string {
	out, _ := r.RenderWithDiagnostics(input)
	return out
}

// RenderWithDiagnostics renders input and also reports every unknown tag
// encountered, in input order. Synthetic closes injected during recovery
// carry no position and are not reported.
func (r *Renderer) RenderWithDiagnostics(input string) (string, []UnknownTag) {
	events := Parse(input)
	diags := r.collectUnknown(events)

	switch r.transform {
	case Remove:
		return concatLiterals(events), diags
	case Keep:
		return verbatim(events), diags
	default:
		return r.apply(events), diags
	}
}

// Validate checks input against the registry and returns the unknown tags
// it references. An empty result means every tag resolves.
func (r *Renderer) Validate(input string) []UnknownTag {
	return r.collectUnknown(Parse(input))
}

func (r *Renderer) collectUnknown(events []Event) []UnknownTag {
	var diags []UnknownTag
	for _, ev := range events {
		if ev.Kind == EventLiteral || ev.Synthetic() {
			continue
		}
		if _, ok := r.styles.Lookup(ev.Name); ok {
			continue
		}
		kind := TokenOpen
		if ev.Kind == EventEnd {
			kind = TokenClose
		}
		diags = append(diags, UnknownTag{Name: ev.Name, Kind: kind, Start: ev.Start, End: ev.End})
	}
	return diags
}

func concatLiterals(events []Event) string {
	var b strings.Builder
	for _, ev := range events {
		if ev.Kind == EventLiteral {
			b.WriteString(ev.Text)
		}
	}
	return b.String()
}

func verbatim(events []Event) string {
	var b strings.Builder
	for _, ev := range events {
		switch ev.Kind {
		case EventLiteral:
			b.WriteString(ev.Text)
		case EventStart:
			b.WriteString("[")
			b.WriteString(ev.Name)
			b.WriteString("]")
		case EventEnd:
			if !ev.Synthetic() {
				b.WriteString("[/")
				b.WriteString(ev.Name)
				b.WriteString("]")
			}
		}
	}
	return b.String()
}

// apply walks the event stream with a stack of active descriptors. Each
// run of literal text is styled with the composition of the stack, outer
// to inner, and flushed whenever the stack changes.
func (r *Renderer) apply(events []Event) string {
	var (
		b     strings.Builder
		run   strings.Builder
		stack []activeStyle
	)

	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(r.styleRun(run.String(), stack))
		run.Reset()
	}

	for _, ev := range events {
		switch ev.Kind {
		case EventLiteral:
			run.WriteString(ev.Text)

		case EventStart:
			if s, ok := r.styles.Lookup(ev.Name); ok {
				flush()
				stack = append(stack, activeStyle{name: ev.Name, style: s})
				continue
			}
			if r.unknown == Passthrough {
				run.WriteString("[")
				run.WriteString(ev.Name)
				run.WriteString("?]")
			}

		case EventEnd:
			if _, ok := r.styles.Lookup(ev.Name); ok {
				flush()
				stack = popStyle(stack, ev.Name)
				continue
			}
			if r.unknown == Passthrough && !ev.Synthetic() {
				run.WriteString("[/")
				run.WriteString(ev.Name)
				run.WriteString("?]")
			}
		}
	}
	flush()
	return b.String()
}

type activeStyle struct {
	name  string
	style style.Style
}

// popStyle removes the most recent entry for name.
func popStyle(stack []activeStyle, name string) []activeStyle {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].name == name {
			return append(stack[:i], stack[i+1:]...)
		}
	}
	return stack
}

func (r *Renderer) styleRun(text string, stack []activeStyle) string {
	if len(stack) == 0 {
		return text
	}
	composed := stack[0].style
	for _, a := range stack[1:] {
		composed = composed.Merge(a.style)
	}
	if composed.IsZero() {
		return text
	}
	return r.styles.Render(composed, text)
}

// StripTags returns the visible text of input with all tags removed.
// Invalid tags and orphaned closes stay, since they render as text in
// every mode. This is the measurement form used for width math.
func StripTags(input string) string {
	return concatLiterals(Parse(input))
}
