/*
Package tags implements the bracket-tag markup used for styled terminal output.

Markup wraps text in named tags such as [bold]...[/bold] or [error]...[/error].
Tag names are resolved against a style registry at render time, which keeps
templates free of escape codes and lets the same string render as styled
terminal output, plain text, or raw markup.

# Pipeline

The package is organized as three layers:
  - Tokenize: splits input into text, open-tag, close-tag, and invalid-tag
    tokens with byte offsets
  - Parse: balances tokens into a flat event stream, auto-closing unclosed
    tags and degrading orphaned closes to literal text
  - Renderer: walks the event stream and applies, removes, or preserves
    tags according to its transform

# Usage

	reg := style.NewRegistry()
	reg.Add("bold", style.Style{Bold: true})
	resolved, err := reg.Resolve()
	if err != nil {
		return err
	}
	r := tags.NewRenderer(resolved, tags.Apply, tags.Passthrough)
	fmt.Println(r.Render("[bold]Hello[/bold]"))

Malformed markup never fails: invalid tags like [1x] stay literal text, a
lone [ swallows the rest of the line as text, and Render always returns a
string. Unknown but well-formed tags are handled per the renderer's
UnknownPolicy and reported through RenderWithDiagnostics or Validate.
*/
package tags
