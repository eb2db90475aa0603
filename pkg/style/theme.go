package style

// ColorMode selects which theme specialization applies.
type ColorMode int

const (
	// ColorLight targets light terminal backgrounds.
	ColorLight ColorMode = iota
	// ColorDark targets dark terminal backgrounds.
	ColorDark
)

// String returns the mode name.
func (m ColorMode) String() string {
	if m == ColorDark {
		return "dark"
	}
	return "light"
}

// Theme groups a base registry with optional light and dark
// specializations. Specialized entries replace base entries wholesale
// when the theme is resolved for a color mode; names only present in
// the base apply to both modes.
type Theme struct {
	Name  string
	Base  *Registry
	Light *Registry
	Dark  *Registry
}

// NewTheme returns a theme with empty registries.
func NewTheme(name string) *Theme {
	return &Theme{
		Name:  name,
		Base:  NewRegistry(),
		Light: NewRegistry(),
		Dark:  NewRegistry(),
	}
}

// Resolve produces the flattened style set for a color mode.
func (t *Theme) Resolve(mode ColorMode, opts ...ResolveOption) (*Resolved, error) {
	merged := t.Base.Clone()
	switch mode {
	case ColorDark:
		merged.Merge(t.Dark)
	default:
		merged.Merge(t.Light)
	}
	return merged.Resolve(opts...)
}

// Validate resolves both color modes eagerly so alias cycles and
// dangling aliases reject a theme before any rendering happens.
func (t *Theme) Validate() error {
	if _, err := t.Resolve(ColorLight); err != nil {
		return err
	}
	if _, err := t.Resolve(ColorDark); err != nil {
		return err
	}
	return nil
}
