// Package config loads veneer settings from layered sources: built-in
// defaults, a veneer.toml file, and VENEER_* environment variables,
// each layer overriding the previous one.
package config

// Settings is the root configuration tree. Zero values mean "use the
// built-in default"; obtain a populated instance through Load or
// DefaultSettings rather than constructing one by hand.
type Settings struct {
	// Theme names the theme to resolve against the style library.
	// Empty selects the library default.
	Theme string `koanf:"theme" toml:"theme" json:"theme"`

	Templates TemplateSection `koanf:"templates" toml:"templates" json:"templates"`
	Styles    StyleSection    `koanf:"styles" toml:"styles" json:"styles"`
	Output    OutputSection   `koanf:"output" toml:"output" json:"output"`
	Help      HelpSection     `koanf:"help" toml:"help" json:"help"`
	Log       LogSection      `koanf:"log" toml:"log" json:"log"`
}

// TemplateSection configures template resolution.
type TemplateSection struct {
	// Extension is appended to template names derived from command
	// paths.
	Extension string `koanf:"extension" toml:"extension" json:"extension"`
	// Dirs lists extra template directories, searched in order.
	Dirs []string `koanf:"dirs" toml:"dirs" json:"dirs"`
	// DevReload re-reads file-backed templates on every render.
	DevReload bool `koanf:"dev_reload" toml:"dev_reload" json:"dev_reload"`
}

// StyleSection configures stylesheet loading.
type StyleSection struct {
	// Dirs lists directories of YAML stylesheets loaded as themes.
	Dirs []string `koanf:"dirs" toml:"dirs" json:"dirs"`
	// MissingIndicator overrides the marker prefixed to text styled
	// with an unregistered name.
	MissingIndicator string `koanf:"missing_indicator" toml:"missing_indicator" json:"missing_indicator"`
}

// OutputSection configures the rendering surface.
type OutputSection struct {
	// Flag controls whether the global --output flag is registered.
	Flag bool `koanf:"flag" toml:"flag" json:"flag"`
	// DefaultMode is the output mode used when --output is absent.
	DefaultMode string `koanf:"default_mode" toml:"default_mode" json:"default_mode"`
}

// HelpSection configures the help subsystem.
type HelpSection struct {
	// Pager is the command help --page pipes through. Empty falls
	// back to $PAGER, then less.
	Pager string `koanf:"pager" toml:"pager" json:"pager"`
}

// LogSection configures logging.
type LogSection struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `koanf:"level" toml:"level" json:"level"`
}

// DefaultSettings returns the built-in defaults, the same values the
// Load pipeline starts from.
func DefaultSettings() *Settings {
	return &Settings{
		Theme: "",
		Templates: TemplateSection{
			Extension: ".tmpl",
			Dirs:      []string{},
			DevReload: false,
		},
		Styles: StyleSection{Dirs: []string{}},
		Output: OutputSection{
			Flag:        true,
			DefaultMode: "auto",
		},
		Help: HelpSection{},
		Log:  LogSection{Level: "warn"},
	}
}

// defaultMap is DefaultSettings as a flat confmap, the first layer of
// the Load pipeline.
func defaultMap() map[string]any {
	return map[string]any{
		"theme":                    "",
		"templates.extension":      ".tmpl",
		"templates.dirs":           []string{},
		"templates.dev_reload":     false,
		"styles.dirs":              []string{},
		"styles.missing_indicator": "",
		"output.flag":              true,
		"output.default_mode":      "auto",
		"help.pager":               "",
		"log.level":                "warn",
	}
}
