package templates

import (
	"embed"
	"io/fs"
)

//go:embed defaults
var defaultsFS embed.FS

// DefaultsFS returns the framework's embedded default templates.
func DefaultsFS() fs.FS {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}
