package style

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/veneer/pkg/errors"
)

// DefaultMissingIndicator is prepended to text styled with a name the
// resolved registry does not know.
const DefaultMissingIndicator = "(!?)"

// Entry is a registered style: either a concrete descriptor or an
// alias to another name.
type Entry struct {
	Style Style
	Alias string
}

// IsAlias reports whether the entry redirects to another name.
func (e Entry) IsAlias() bool {
	return e.Alias != ""
}

// Registry maps style names to entries. Re-adding a name replaces the
// previous entry silently; alias validity is checked at resolve time.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Add registers a concrete style under name.
func (r *Registry) Add(name string, s Style) {
	r.entries[name] = Entry{Style: s}
}

// AddAlias registers name as an alias for target.
func (r *Registry) AddAlias(name, target string) {
	r.entries[name] = Entry{Alias: target}
}

// Get returns the entry registered under name.
func (r *Registry) Get(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Merge overlays other on r: entries from other replace same-named
// entries in r.
func (r *Registry) Merge(other *Registry) {
	if other == nil {
		return
	}
	for name, e := range other.entries {
		r.entries[name] = e
	}
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	out := NewRegistry()
	for name, e := range r.entries {
		out.entries[name] = e
	}
	return out
}

// ResolveOption configures registry resolution.
type ResolveOption func(*Resolved)

// WithRenderer binds the resolved set to a specific lipgloss renderer.
// Tests use this to pin a deterministic color profile.
func WithRenderer(lr *lipgloss.Renderer) ResolveOption {
	return func(res *Resolved) {
		res.renderer = lr
	}
}

// WithMissingIndicator overrides the missing-style indicator. An empty
// string disables it.
func WithMissingIndicator(indicator string) ResolveOption {
	return func(res *Resolved) {
		res.indicator = indicator
	}
}

// Resolve flattens the registry: every alias chain is followed to its
// concrete descriptor. Chains that loop return ALIAS_CYCLE; chains
// that leave the registry return DANGLING_ALIAS.
func (r *Registry) Resolve(opts ...ResolveOption) (*Resolved, error) {
	res := &Resolved{
		styles:    make(map[string]Style, len(r.entries)),
		indicator: DefaultMissingIndicator,
		renderer:  lipgloss.DefaultRenderer(),
	}
	for _, opt := range opts {
		opt(res)
	}
	res.forced = lipgloss.NewRenderer(res.renderer.Output())
	res.forced.SetColorProfile(termenv.TrueColor)

	for name := range r.entries {
		s, err := r.follow(name)
		if err != nil {
			return nil, err
		}
		res.styles[name] = s
	}
	return res, nil
}

// follow walks the alias chain starting at name.
func (r *Registry) follow(name string) (Style, error) {
	chain := []string{name}
	seen := map[string]bool{name: true}

	cur := r.entries[name]
	for cur.IsAlias() {
		target := cur.Alias
		if seen[target] {
			chain = append(chain, target)
			return Style{}, errors.Newf(errors.ErrAliasCycle,
				"style alias cycle: %s", strings.Join(chain, " -> ")).
				WithDetail("chain", chain)
		}
		next, ok := r.entries[target]
		if !ok {
			return Style{}, errors.Newf(errors.ErrDanglingAlias,
				"style alias %q points at unknown style %q", chain[len(chain)-1], target).
				WithDetail("alias", chain[len(chain)-1]).
				WithDetail("target", target)
		}
		chain = append(chain, target)
		seen[target] = true
		cur = next
	}
	return cur.Style, nil
}

// Resolved is a flattened, alias-free style set bound to a lipgloss
// renderer. It is safe for concurrent reads.
type Resolved struct {
	styles    map[string]Style
	indicator string
	renderer  *lipgloss.Renderer

	// forced renders Force styles when the bound renderer's profile
	// would strip them.
	forced *lipgloss.Renderer
}

// Lookup returns the descriptor for name.
func (res *Resolved) Lookup(name string) (Style, bool) {
	s, ok := res.styles[name]
	return s, ok
}

// Names returns all resolved names, sorted.
func (res *Resolved) Names() []string {
	names := make([]string, 0, len(res.styles))
	for name := range res.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Indicator returns the missing-style indicator in effect.
func (res *Resolved) Indicator() string {
	return res.indicator
}

// Renderer returns the bound lipgloss renderer.
func (res *Resolved) Renderer() *lipgloss.Renderer {
	return res.renderer
}

// Missing prepends the missing-style indicator to text. With the
// indicator disabled it returns text unchanged.
func (res *Resolved) Missing(text string) string {
	if res.indicator == "" {
		return text
	}
	return res.indicator + " " + text
}

// Apply styles text with the named style using ANSI sequences.
// Unknown names return the text unstyled behind the missing-style
// indicator.
func (res *Resolved) Apply(name, text string) string {
	s, ok := res.styles[name]
	if !ok {
		return res.Missing(text)
	}
	return res.Render(s, text)
}

// ApplyPlain returns text without styling; unknown names still get
// the missing-style indicator so broken templates stay visible in
// plain output.
func (res *Resolved) ApplyPlain(name, text string) string {
	if _, ok := res.styles[name]; !ok {
		return res.Missing(text)
	}
	return text
}

// ApplyDebug wraps text in the tag markup for name, making the style
// boundaries visible. Unknown names get the missing-style indicator
// instead of fake markup.
func (res *Resolved) ApplyDebug(name, text string) string {
	if _, ok := res.styles[name]; !ok {
		return res.Missing(text)
	}
	return "[" + name + "]" + text + "[/" + name + "]"
}

// Render applies a composed descriptor to text. Force styles render
// at full fidelity even when the bound renderer reports no color
// support.
func (res *Resolved) Render(s Style, text string) string {
	r := res.renderer
	if s.Force && r.ColorProfile() == termenv.Ascii {
		r = res.forced
	}
	return s.Compile(r).Render(text)
}
