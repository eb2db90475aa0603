package render

import (
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/veneer/pkg/errors"
	"github.com/arthur-debert/veneer/pkg/logging"
	"github.com/arthur-debert/veneer/pkg/style"
	"github.com/arthur-debert/veneer/pkg/tabular"
	"github.com/arthur-debert/veneer/pkg/tags"
	"github.com/arthur-debert/veneer/pkg/templates"
)

// Renderer is the mode-driven entry point of the library. One call
// takes a template (inline source or registry name), handler data, and
// a mode; structured modes serialize the data directly, text-like modes
// run the template pass and then the tag pass against the active theme.
type Renderer struct {
	theme     *style.Theme
	templates *templates.Registry
	contexts  *ContextRegistry
	output    *os.File
	writer    io.Writer

	colorMode   *style.ColorMode
	forceColor  *bool
	forceWidth  int
	indicator   *string
	unknown     tags.UnknownPolicy
	defaultMode Mode
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme sets the theme styles resolve against.
func WithTheme(t *style.Theme) Option {
	return func(r *Renderer) { r.theme = t }
}

// WithTemplates attaches a template registry for rendering by name.
func WithTemplates(reg *templates.Registry) Option {
	return func(r *Renderer) { r.templates = reg }
}

// WithContexts attaches a context registry whose entries are injected
// under the template data in text-like modes.
func WithContexts(c *ContextRegistry) Option {
	return func(r *Renderer) { r.contexts = c }
}

// WithOutput sets the file the terminal probes run against.
func WithOutput(f *os.File) Option {
	return func(r *Renderer) {
		r.output = f
		r.writer = f
	}
}

// WithWriter directs styled output at an arbitrary writer. Probes fall
// back to their defaults, so combine with WithColor and WithWidth when
// determinism matters.
func WithWriter(w io.Writer) Option {
	return func(r *Renderer) {
		r.writer = w
		r.output = nil
	}
}

// WithColorMode pins the light/dark theme specialization instead of
// probing the terminal background.
func WithColorMode(m style.ColorMode) Option {
	return func(r *Renderer) { r.colorMode = &m }
}

// WithColor forces the Auto mode decision instead of probing the
// output for color support.
func WithColor(on bool) Option {
	return func(r *Renderer) { r.forceColor = &on }
}

// WithWidth pins the line width instead of probing the terminal size.
func WithWidth(n int) Option {
	return func(r *Renderer) { r.forceWidth = n }
}

// WithMissingIndicator overrides the token prepended to text styled
// with an unknown name.
func WithMissingIndicator(s string) Option {
	return func(r *Renderer) { r.indicator = &s }
}

// WithUnknownPolicy selects how tags with unresolved names come out:
// marked passthrough (the default) or stripped.
func WithUnknownPolicy(p tags.UnknownPolicy) Option {
	return func(r *Renderer) { r.unknown = p }
}

// WithDefaultMode sets the mode Render uses.
func WithDefaultMode(m Mode) Option {
	return func(r *Renderer) { r.defaultMode = m }
}

// NewRenderer builds a renderer. Without options it targets stdout
// with the framework default theme and no registered templates.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		theme:       style.DefaultTheme(),
		contexts:    NewContextRegistry(),
		output:      os.Stdout,
		writer:      os.Stdout,
		defaultMode: Auto,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Theme returns the active theme.
func (r *Renderer) Theme() *style.Theme { return r.theme }

// Templates returns the attached template registry, which may be nil.
func (r *Renderer) Templates() *templates.Registry { return r.templates }

// Contexts returns the context registry.
func (r *Renderer) Contexts() *ContextRegistry { return r.contexts }

// DefaultMode returns the mode Render uses when none is given.
func (r *Renderer) DefaultMode() Mode { return r.defaultMode }

// Width returns the line width renders will use.
func (r *Renderer) Width() int {
	if r.forceWidth > 0 {
		return r.forceWidth
	}
	return TerminalWidth(r.output)
}

// Effective narrows Auto to Term or Text by probing the output; every
// other mode passes through.
func (r *Renderer) Effective(mode Mode) Mode {
	if mode != Auto {
		return mode
	}
	on := SupportsColor(r.output)
	if r.forceColor != nil {
		on = *r.forceColor
	}
	if on {
		return Term
	}
	return Text
}

// Render renders an inline template in the renderer's default mode.
func (r *Renderer) Render(tmpl string, data any) (string, error) {
	return r.RenderMode(tmpl, data, r.defaultMode)
}

// RenderMode renders an inline template in the given mode.
func (r *Renderer) RenderMode(tmpl string, data any, mode Mode) (string, error) {
	return r.RenderModeSpec(tmpl, data, mode, nil)
}

// RenderWithContext renders an inline template with extra context
// entries for this call only. Extras rank between the handler data and
// the registered context entries: data wins over an extra of the same
// name, an extra wins over a registered entry. Structured modes ignore
// them, as they ignore all context.
func (r *Renderer) RenderWithContext(tmpl string, data any, mode Mode, extra map[string]any) (string, error) {
	if mode.Structured() || len(extra) == 0 {
		return r.RenderMode(tmpl, data, mode)
	}
	norm, err := Normalize(data)
	if err != nil {
		return "", err
	}
	m, ok := norm.(map[string]any)
	if !ok && norm != nil {
		// Non-map data cannot carry injected names.
		return r.RenderMode(tmpl, norm, mode)
	}
	merged := make(map[string]any, len(extra)+len(m))
	for k, v := range extra {
		merged[k] = v
	}
	for k, v := range m {
		merged[k] = v
	}
	return r.RenderMode(tmpl, merged, mode)
}

// RenderNamed looks the template up in the attached registry and
// renders it. Structured modes skip the lookup entirely, so a missing
// template never blocks machine-readable output.
func (r *Renderer) RenderNamed(name string, data any, mode Mode) (string, error) {
	return r.RenderNamedSpec(name, data, mode, nil)
}

// RenderNamedSpec is RenderNamed with a tabular spec for CSV column
// selection.
func (r *Renderer) RenderNamedSpec(name string, data any, mode Mode, spec []tabular.Column) (string, error) {
	if mode.Structured() {
		return Serialize(data, mode, spec)
	}
	if r.templates == nil {
		return "", errors.Newf(errors.ErrTemplateNotFound, "template %q not found", name)
	}
	src, err := r.templates.Lookup(name)
	if err != nil {
		return "", err
	}
	return r.RenderModeSpec(src, data, mode, spec)
}

// RenderModeSpec is the single driver every other render call funnels
// into. Structured modes serialize the data and return. Text-like
// modes resolve the theme for the active color mode, inject context
// values under the data, run the template pass, and finish with the
// tag pass whose transform the mode selects.
func (r *Renderer) RenderModeSpec(tmpl string, data any, mode Mode, spec []tabular.Column) (string, error) {
	if mode.Structured() {
		return Serialize(data, mode, spec)
	}
	eff := r.Effective(mode)
	width := r.Width()

	res, err := r.resolveStyles(eff)
	if err != nil {
		return "", err
	}

	expanded, err := r.templatePass(tmpl, data, eff, width, res)
	if err != nil {
		return "", err
	}

	return r.tagPass(eff, res).Render(expanded), nil
}

// resolveStyles flattens the theme for the effective mode's color
// handling. Term output gets a renderer pinned to full color so styles
// survive redirection; alias cycles and dangling aliases surface here.
func (r *Renderer) resolveStyles(eff Mode) (*style.Resolved, error) {
	colorMode := DetectColorMode()
	if r.colorMode != nil {
		colorMode = *r.colorMode
	}

	opts := []style.ResolveOption{}
	if eff == Term {
		lr := lipgloss.NewRenderer(r.writer)
		lr.SetColorProfile(termenv.TrueColor)
		opts = append(opts, style.WithRenderer(lr))
	}
	if r.indicator != nil {
		opts = append(opts, style.WithMissingIndicator(*r.indicator))
	}

	res, err := r.theme.Resolve(colorMode, opts...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// templatePass expands the template against the normalized data with
// context values merged underneath. Map data merges; any other shape
// is handed to the template as-is and context injection is skipped.
func (r *Renderer) templatePass(tmpl string, data any, eff Mode, width int, res *style.Resolved) (string, error) {
	tpl, err := template.New("render").Funcs(FuncMap(res, eff, width)).Parse(tmpl)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrRender, "template parse failed")
	}

	norm, err := Normalize(data)
	if err != nil {
		return "", err
	}

	dot := norm
	if m, ok := norm.(map[string]any); ok || norm == nil {
		rc := RenderContext{Mode: eff, Width: width, Theme: r.theme, Data: norm}
		dot = r.contexts.Resolve(rc, m)
	}

	var b strings.Builder
	if err := tpl.Execute(&b, dot); err != nil {
		logging.GetLogger("render").Debug().Err(err).Msg("template execution failed")
		return "", errors.Wrap(err, errors.ErrRender, "template execution failed")
	}
	return b.String(), nil
}

// tagPass picks the tag transform for the effective mode.
func (r *Renderer) tagPass(eff Mode, res *style.Resolved) *tags.Renderer {
	switch eff {
	case Text:
		return tags.NewRenderer(res, tags.Remove, r.unknown)
	case TermDebug:
		return tags.NewRenderer(res, tags.Keep, r.unknown)
	default:
		return tags.NewRenderer(res, tags.Apply, r.unknown)
	}
}
