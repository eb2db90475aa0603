package command

// outputKind discriminates the handler output variants.
type outputKind int

const (
	outputRender outputKind = iota
	outputSilent
	outputBinary
)

// Output is what a handler produces: data for the rendering pipeline,
// intentional silence, or a binary payload with a suggested filename.
// Only the data variant goes through templates and structured modes;
// binary payloads skip rendering entirely.
type Output struct {
	kind     outputKind
	data     any
	payload  []byte
	filename string
}

// RenderData wraps handler data for the rendering pipeline.
func RenderData(v any) Output {
	return Output{kind: outputRender, data: v}
}

// Silent produces no output at all.
func Silent() Output {
	return Output{kind: outputSilent}
}

// Binary carries raw bytes the dispatcher writes to a file, using the
// suggested filename unless --output-file-path overrides it.
func Binary(payload []byte, filename string) Output {
	return Output{kind: outputBinary, payload: payload, filename: filename}
}

// IsSilent reports whether the output is the silent variant.
func (o Output) IsSilent() bool { return o.kind == outputSilent }

// IsBinary reports whether the output is the binary variant.
func (o Output) IsBinary() bool { return o.kind == outputBinary }

// Data returns the render-variant payload, nil otherwise.
func (o Output) Data() any { return o.data }

// Payload returns the binary bytes and suggested filename.
func (o Output) Payload() ([]byte, string) { return o.payload, o.filename }

// renderedKind discriminates post-render output shapes.
type renderedKind int

const (
	renderedText renderedKind = iota
	renderedSilent
	renderedBinary
)

// Rendered is the output after the rendering step: printable text, a
// binary payload awaiting its file write, or silence. Post-output
// hooks receive and return this shape.
type Rendered struct {
	kind     renderedKind
	text     string
	payload  []byte
	filename string
}

// RenderedText wraps printable text.
func RenderedText(s string) Rendered {
	return Rendered{kind: renderedText, text: s}
}

// RenderedSilent is the rendered form of a silent handler output.
func RenderedSilent() Rendered {
	return Rendered{kind: renderedSilent}
}

// RenderedBinary carries bytes that still need their file write.
func RenderedBinary(payload []byte, filename string) Rendered {
	return Rendered{kind: renderedBinary, payload: payload, filename: filename}
}

// Text returns the printable text of a text output.
func (r Rendered) Text() string { return r.text }

// IsSilent reports whether nothing should be printed.
func (r Rendered) IsSilent() bool { return r.kind == renderedSilent }

// IsBinary reports whether the output is an unwritten binary payload.
func (r Rendered) IsBinary() bool { return r.kind == renderedBinary }

// Payload returns the binary bytes and suggested filename.
func (r Rendered) Payload() ([]byte, string) { return r.payload, r.filename }

// resultKind discriminates the final dispatch results.
type resultKind int

const (
	resultHandled resultKind = iota
	resultSilent
	resultFile
)

// RunResult is the terminal value of one dispatch. Handled carries the
// text to print (rendered output or a captured error message); Silent
// prints nothing; File reports output diverted to a file, after which
// stdout stays silent.
type RunResult struct {
	kind     resultKind
	text     string
	filename string
	err      error
}

// Handled wraps printable text.
func Handled(text string) RunResult {
	return RunResult{kind: resultHandled, text: text}
}

// handledErr wraps a captured runtime error as printable text.
func handledErr(text string, err error) RunResult {
	return RunResult{kind: resultHandled, text: text, err: err}
}

// SilentResult reports a dispatch that produced no output.
func SilentResult() RunResult {
	return RunResult{kind: resultSilent}
}

// FileResult reports output written to filename.
func FileResult(filename string) RunResult {
	return RunResult{kind: resultFile, filename: filename}
}

// Text returns the printable text, empty for silent and file results.
func (r RunResult) Text() string { return r.text }

// IsSilent reports whether the dispatch intentionally printed nothing.
func (r RunResult) IsSilent() bool { return r.kind == resultSilent }

// Filename returns the path a file result was written to.
func (r RunResult) Filename() string { return r.filename }

// Err returns the runtime error captured into this result, if any.
// The error text is already part of Text; callers only need Err to
// pick a nonzero exit code.
func (r RunResult) Err() error { return r.err }
