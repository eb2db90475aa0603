package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppDirName is the subdirectory veneer uses inside XDG base
// directories.
const AppDirName = "veneer"

// ConfigDir returns the user configuration directory.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the user configuration file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), FileName)
}

// DataDir returns the user data directory holding templates and
// stylesheets.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppDirName)
}

// TemplatesDir returns the user template directory.
func TemplatesDir() string {
	return filepath.Join(DataDir(), "templates")
}

// StylesDir returns the user stylesheet directory.
func StylesDir() string {
	return filepath.Join(DataDir(), "styles")
}
