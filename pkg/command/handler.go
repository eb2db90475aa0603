package command

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Matches is the parsed-argument view handed to hooks and handlers:
// the resolved cobra command plus its positional arguments.
type Matches struct {
	Command *cobra.Command
	Args    []string
}

// Flags returns the flag set of the matched command, falling back to
// an empty set when no command is attached (as in unit tests).
func (m *Matches) Flags() *pflag.FlagSet {
	if m == nil || m.Command == nil {
		return pflag.NewFlagSet("", pflag.ContinueOnError)
	}
	return m.Command.Flags()
}

// Context travels with one dispatch: the dotted path that matched, the
// shared app state, and the per-invocation extensions container that
// pre-dispatch hooks may fill.
type Context struct {
	Path       string
	AppState   *Extensions
	Extensions *Extensions
}

// Handler executes one command invocation. Implementations must be
// safe for concurrent use when the same App serves multiple dispatches;
// handlers that keep per-call state should capture it in the
// per-invocation extensions instead.
type Handler interface {
	Handle(m *Matches, ctx *Context) (Output, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(m *Matches, ctx *Context) (Output, error)

// Handle calls the wrapped function.
func (f HandlerFunc) Handle(m *Matches, ctx *Context) (Output, error) {
	return f(m, ctx)
}

// Data adapts a function returning plain data: the value is wrapped
// into the render variant, so the common case never touches Output.
func Data[T any](fn func(m *Matches, ctx *Context) (T, error)) Handler {
	return HandlerFunc(func(m *Matches, ctx *Context) (Output, error) {
		v, err := fn(m, ctx)
		if err != nil {
			return Output{}, err
		}
		return RenderData(v), nil
	})
}

// Static adapts a fixed value: every invocation renders the same data.
func Static(v any) Handler {
	return HandlerFunc(func(*Matches, *Context) (Output, error) {
		return RenderData(v), nil
	})
}
