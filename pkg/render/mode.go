// Package render is the rendering facade: one entry point that takes a
// template, handler data, and an output mode, and produces terminal
// text, plain text, debug markup, or a structured serialization.
//
// Text-like modes run two passes: the template engine first, then the
// bracket-tag renderer. Structured modes skip both and serialize the
// data directly.
package render

import (
	"strings"

	"github.com/arthur-debert/veneer/pkg/errors"
)

// Mode selects the rendering path.
type Mode int

const (
	// Auto styles when the output terminal supports color, otherwise
	// falls back to plain text.
	Auto Mode = iota
	// Term always applies ANSI styling.
	Term
	// Text strips all styling.
	Text
	// TermDebug preserves tag markup verbatim, showing style boundaries.
	TermDebug
	// Json serializes the data as pretty-printed JSON.
	Json
	// Yaml serializes the data as YAML.
	Yaml
	// Xml serializes the data as XML under a single root element.
	Xml
	// Csv serializes the data as RFC 4180 CSV with a header row.
	Csv
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	case Term:
		return "term"
	case Text:
		return "text"
	case TermDebug:
		return "term-debug"
	case Json:
		return "json"
	case Yaml:
		return "yaml"
	case Xml:
		return "xml"
	case Csv:
		return "csv"
	default:
		return "unknown"
	}
}

// Structured reports whether the mode bypasses templates and styling
// entirely.
func (m Mode) Structured() bool {
	switch m {
	case Json, Yaml, Xml, Csv:
		return true
	default:
		return false
	}
}

// ParseMode converts a flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return Auto, nil
	case "term", "terminal":
		return Term, nil
	case "text", "plain":
		return Text, nil
	case "term-debug":
		return TermDebug, nil
	case "json":
		return Json, nil
	case "yaml":
		return Yaml, nil
	case "xml":
		return Xml, nil
	case "csv":
		return Csv, nil
	default:
		return Auto, errors.Newf(errors.ErrInvalidInput,
			"invalid output mode %q (valid: %s)", s, strings.Join(ModeValues(), ", "))
	}
}

// ModeValues lists the accepted --output flag values.
func ModeValues() []string {
	return []string{"auto", "term", "text", "term-debug", "json", "yaml", "xml", "csv"}
}
