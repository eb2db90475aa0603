package command

import (
	"fmt"
)

// HookPhase names the point in a dispatch where a hook runs.
type HookPhase int

const (
	// PreDispatch runs before the handler; hooks may populate the
	// per-invocation extensions.
	PreDispatch HookPhase = iota
	// PostDispatch runs on the serialized handler data, composing
	// left to right.
	PostDispatch
	// PostOutput runs on the final output after rendering.
	PostOutput
)

func (p HookPhase) String() string {
	switch p {
	case PreDispatch:
		return "pre_dispatch"
	case PostDispatch:
		return "post_dispatch"
	case PostOutput:
		return "post_output"
	default:
		return "unknown"
	}
}

// PreHook runs before the handler. It may read arguments and insert
// per-invocation state into ctx.Extensions; an error aborts the
// dispatch before the handler is called.
type PreHook func(m *Matches, ctx *Context) error

// PostHook receives the normalized handler data and returns a possibly
// transformed tree. Multiple hooks compose left to right.
type PostHook func(m *Matches, ctx *Context, data any) (any, error)

// OutputHook transforms the final rendered output, text or binary
// alike.
type OutputHook func(m *Matches, ctx *Context, out Rendered) (Rendered, error)

// Hooks groups the hook chains attached to one command path. Within a
// phase, hooks run in registration order; the first error aborts the
// remaining hooks of that phase and every later phase.
type Hooks struct {
	Pre    []PreHook
	Post   []PostHook
	Output []OutputHook
}

// OnPre appends pre-dispatch hooks.
func (h *Hooks) OnPre(hooks ...PreHook) *Hooks {
	h.Pre = append(h.Pre, hooks...)
	return h
}

// OnPost appends post-dispatch hooks.
func (h *Hooks) OnPost(hooks ...PostHook) *Hooks {
	h.Post = append(h.Post, hooks...)
	return h
}

// OnOutput appends post-output hooks.
func (h *Hooks) OnOutput(hooks ...OutputHook) *Hooks {
	h.Output = append(h.Output, hooks...)
	return h
}

// Merge appends all chains from other.
func (h *Hooks) Merge(other Hooks) {
	h.Pre = append(h.Pre, other.Pre...)
	h.Post = append(h.Post, other.Post...)
	h.Output = append(h.Output, other.Output...)
}

// Empty reports whether no hooks are registered.
func (h Hooks) Empty() bool {
	return len(h.Pre) == 0 && len(h.Post) == 0 && len(h.Output) == 0
}

// HookError wraps a user hook failure with the phase it happened in.
// It halts the dispatch and surfaces as a "Hook error: …" result.
type HookError struct {
	Phase   HookPhase
	Message string
	Err     error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("Hook error: %s", e.Message)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// hookErr wraps a user error into a HookError for one phase.
func hookErr(phase HookPhase, err error) *HookError {
	return &HookError{Phase: phase, Message: err.Error(), Err: err}
}

// runPre executes the pre-dispatch chain, failing fast.
func (h Hooks) runPre(m *Matches, ctx *Context) error {
	for _, hook := range h.Pre {
		if err := hook(m, ctx); err != nil {
			return hookErr(PreDispatch, err)
		}
	}
	return nil
}

// runPost threads the data tree through the post-dispatch chain.
func (h Hooks) runPost(m *Matches, ctx *Context, data any) (any, error) {
	for _, hook := range h.Post {
		next, err := hook(m, ctx, data)
		if err != nil {
			return data, hookErr(PostDispatch, err)
		}
		data = next
	}
	return data, nil
}

// runOutput threads the final output through the post-output chain.
func (h Hooks) runOutput(m *Matches, ctx *Context, out Rendered) (Rendered, error) {
	for _, hook := range h.Output {
		next, err := hook(m, ctx, out)
		if err != nil {
			return out, hookErr(PostOutput, err)
		}
		out = next
	}
	return out, nil
}
