package tags

import "fmt"

// EventKind identifies the class of a parse Event.
type EventKind int

const (
	// EventLiteral is text that should appear in the output. Invalid tags
	// and orphaned close tags surface as literals.
	EventLiteral EventKind = iota
	// EventStart marks the beginning of a tagged region.
	EventStart
	// EventEnd marks the end of a tagged region.
	EventEnd
)

func (k EventKind) String() string {
	switch k {
	case EventLiteral:
		return "literal"
	case EventStart:
		return "start"
	case EventEnd:
		return "end"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one element of the balanced stream produced by Parse. Start and
// End are the byte offsets of the token the event came from. Synthetic end
// events, inserted to balance tags the input never closed, carry -1 for
// both offsets and produce no output in any render mode.
type Event struct {
	Kind EventKind

	// Text is the literal content for EventLiteral.
	Text string

	// Name is the tag name for EventStart and EventEnd.
	Name string

	Start int
	End   int
}

// Synthetic reports whether the event was inserted by the parser rather
// than lexed from the input.
func (e Event) Synthetic() bool {
	return e.Start < 0
}

func literalEvent(text string, start, end int) Event {
	return Event{Kind: EventLiteral, Text: text, Start: start, End: end}
}

func syntheticEnd(name string) Event {
	return Event{Kind: EventEnd, Name: name, Start: -1, End: -1}
}

// Parse tokenizes input and balances the tokens into an event stream.
// Every EventStart is guaranteed a matching EventEnd, in properly nested
// order, so consumers never track malformed input themselves.
//
// Recovery rules:
//   - A close tag matching the innermost open region closes it.
//   - A close tag matching an outer region first auto-closes everything
//     nested inside it with synthetic ends.
//   - A close tag matching nothing degrades to the literal text "[/name]".
//   - Regions still open at end of input are closed innermost-first with
//     synthetic ends.
func Parse(input string) []Event {
	var (
		events []Event
		stack  []string
	)

	tk := NewTokenizer(input)
	for {
		tok, ok := tk.Next()
		if !ok {
			break
		}
		switch tok.Kind {
		case TokenText, TokenInvalid:
			events = append(events, literalEvent(tok.Content, tok.Start, tok.End))

		case TokenOpen:
			stack = append(stack, tok.Name)
			events = append(events, Event{Kind: EventStart, Name: tok.Name, Start: tok.Start, End: tok.End})

		case TokenClose:
			at := -1
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i] == tok.Name {
					at = i
					break
				}
			}
			if at < 0 {
				// Orphaned close: nothing to pair with, keep it visible.
				events = append(events, literalEvent(tok.Content, tok.Start, tok.End))
				continue
			}
			for i := len(stack) - 1; i > at; i-- {
				events = append(events, syntheticEnd(stack[i]))
			}
			events = append(events, Event{Kind: EventEnd, Name: tok.Name, Start: tok.Start, End: tok.End})
			stack = stack[:at]
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		events = append(events, syntheticEnd(stack[i]))
	}
	return events
}
