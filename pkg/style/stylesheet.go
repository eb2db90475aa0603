package style

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/veneer/pkg/errors"
)

// StyleDef is one style definition in a YAML stylesheet. An entry
// with alias set redirects to another name; other fields are ignored
// for aliases.
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Dim        bool   `yaml:"dim,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Force      bool   `yaml:"force,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Alias      string `yaml:"alias,omitempty"`
}

// Stylesheet is the YAML document shape for a theme:
//
//	styles:
//	  header: {bold: true, foreground: "#212529"}
//	  ok: {alias: success}
//	light:
//	  header: {bold: true, foreground: "#212529"}
//	dark:
//	  header: {bold: true, foreground: "#F8F9FA"}
//
// Entries under light and dark replace same-named entries from styles
// when the theme resolves for that mode.
type Stylesheet struct {
	Styles map[string]StyleDef `yaml:"styles"`
	Light  map[string]StyleDef `yaml:"light,omitempty"`
	Dark   map[string]StyleDef `yaml:"dark,omitempty"`
}

// ParseStylesheet builds a theme named name from YAML data.
func ParseStylesheet(name string, data []byte) (*Theme, error) {
	var sheet Stylesheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"failed to parse stylesheet %q", name)
	}

	theme := NewTheme(name)
	fillRegistry(theme.Base, sheet.Styles)
	fillRegistry(theme.Light, sheet.Light)
	fillRegistry(theme.Dark, sheet.Dark)
	return theme, nil
}

// LoadStylesheet reads a YAML stylesheet from disk. The theme takes
// its name from the file's base name.
func LoadStylesheet(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystemRead,
			"failed to read stylesheet %s", path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseStylesheet(name, data)
}

func fillRegistry(r *Registry, defs map[string]StyleDef) {
	for name, def := range defs {
		if def.Alias != "" {
			r.AddAlias(name, def.Alias)
			continue
		}
		r.Add(name, buildStyle(def))
	}
}

// buildStyle constructs a descriptor from a style definition.
func buildStyle(def StyleDef) Style {
	return Style{
		Foreground: def.Foreground,
		Background: def.Background,
		Bold:       def.Bold,
		Dim:        def.Dim,
		Italic:     def.Italic,
		Underline:  def.Underline,
		Force:      def.Force,
	}
}
