package render

import (
	"sort"

	"github.com/arthur-debert/veneer/pkg/style"
)

// RenderContext is the snapshot handed to context providers: the mode
// and width being rendered for, the active theme, and the handler data
// about to fill the template.
type RenderContext struct {
	Mode  Mode
	Width int
	Theme *style.Theme
	Data  any
}

// Provider computes a context value for one render call. Providers
// must be pure: no mutation of the render context, no side effects.
type Provider func(RenderContext) any

// ContextRegistry holds named values injected into every template's
// data map. Static values are fixed at registration; providers are
// re-evaluated per render. Injection only happens for text-like modes;
// structured serialization sees the handler data untouched.
type ContextRegistry struct {
	static    map[string]any
	providers map[string]Provider
}

// NewContextRegistry returns an empty registry.
func NewContextRegistry() *ContextRegistry {
	return &ContextRegistry{
		static:    make(map[string]any),
		providers: make(map[string]Provider),
	}
}

// Set registers a static context value. A provider with the same name
// is dropped; last registration wins.
func (c *ContextRegistry) Set(name string, value any) {
	c.static[name] = value
	delete(c.providers, name)
}

// Provide registers a computed context value.
func (c *ContextRegistry) Provide(name string, fn Provider) {
	c.providers[name] = fn
	delete(c.static, name)
}

// Names lists the registered context keys in sorted order.
func (c *ContextRegistry) Names() []string {
	names := make([]string, 0, len(c.static)+len(c.providers))
	for name := range c.static {
		names = append(names, name)
	}
	for name := range c.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered context entries.
func (c *ContextRegistry) Len() int {
	return len(c.static) + len(c.providers)
}

// Merge copies all entries from other into c, overwriting same-name
// entries.
func (c *ContextRegistry) Merge(other *ContextRegistry) {
	if other == nil {
		return
	}
	for name, value := range other.static {
		c.Set(name, value)
	}
	for name, fn := range other.providers {
		c.Provide(name, fn)
	}
}

// Resolve evaluates every entry against the render context and merges
// the results under the template data: a data key always shadows a
// context key of the same name. The returned map is freshly allocated.
func (c *ContextRegistry) Resolve(rc RenderContext, data map[string]any) map[string]any {
	if c == nil {
		merged := make(map[string]any, len(data))
		for name, value := range data {
			merged[name] = value
		}
		return merged
	}
	merged := make(map[string]any, c.Len()+len(data))
	for name, value := range c.static {
		merged[name] = value
	}
	for name, fn := range c.providers {
		merged[name] = fn(rc)
	}
	for name, value := range data {
		merged[name] = value
	}
	return merged
}
