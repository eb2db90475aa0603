package style

import (
	_ "embed"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/veneer/pkg/errors"
)

// DefaultThemeName is the theme every library starts with.
const DefaultThemeName = "default"

//go:embed default.yaml
var defaultStylesheet []byte

// DefaultTheme returns the framework's embedded theme.
func DefaultTheme() *Theme {
	theme, err := ParseStylesheet(DefaultThemeName, defaultStylesheet)
	if err != nil {
		// The embedded sheet ships with the binary; failing to parse
		// it is a build defect, not a runtime condition.
		panic("style: embedded default stylesheet is invalid: " + err.Error())
	}
	return theme
}

// Library holds named themes and designates one as the default. A new
// library always contains the embedded default theme; loading a
// stylesheet with the same name replaces it.
type Library struct {
	themes      map[string]*Theme
	defaultName string
}

// NewLibrary returns a library seeded with the embedded default theme.
func NewLibrary() *Library {
	l := &Library{
		themes:      make(map[string]*Theme),
		defaultName: DefaultThemeName,
	}
	l.AddTheme(DefaultTheme())
	return l
}

// AddTheme registers a theme under its name, replacing any previous
// theme of that name.
func (l *Library) AddTheme(t *Theme) {
	l.themes[t.Name] = t
}

// LoadFile loads one stylesheet document as a theme named for its
// file.
func (l *Library) LoadFile(path string) error {
	theme, err := LoadStylesheet(path)
	if err != nil {
		return err
	}
	l.AddTheme(theme)
	return nil
}

// LoadDir loads every .yaml/.yml document in dir as a theme. A
// missing directory is not an error.
func (l *Library) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFilesystemRead,
			"failed to read theme directory %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if err := l.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Theme returns the named theme or THEME_NOT_FOUND.
func (l *Library) Theme(name string) (*Theme, error) {
	t, ok := l.themes[name]
	if !ok {
		return nil, errors.Newf(errors.ErrThemeNotFound, "no theme named %q", name).
			WithDetail("theme", name).
			WithDetail("available", l.Names())
	}
	return t, nil
}

// SetDefault designates an existing theme as the library default.
func (l *Library) SetDefault(name string) error {
	if _, ok := l.themes[name]; !ok {
		return errors.Newf(errors.ErrThemeNotFound, "no theme named %q", name).
			WithDetail("theme", name)
	}
	l.defaultName = name
	return nil
}

// Default returns the library's default theme.
func (l *Library) Default() *Theme {
	return l.themes[l.defaultName]
}

// Names returns all theme names, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.themes))
	for name := range l.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
