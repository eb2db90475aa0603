//go:build property
// +build property

package render_test

import (
	"io"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/arthur-debert/veneer/pkg/render"
	"github.com/arthur-debert/veneer/pkg/style"
	"github.com/arthur-debert/veneer/pkg/tags"
)

// markupGen produces template-safe strings that may contain bracket
// markup but never template actions.
var markupGen = gen.RegexMatch(`[a-z A-Z0-9\[\]/_-]*`)

func propRenderer() *render.Renderer {
	return render.NewRenderer(
		render.WithTheme(testTheme()),
		render.WithWriter(io.Discard),
		render.WithColorMode(style.ColorLight),
		render.WithWidth(40),
	)
}

func TestRenderProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("debug output stripped equals text output", prop.ForAll(
		func(src string) bool {
			r := propRenderer()
			debug, err := r.RenderMode(src, nil, render.TermDebug)
			if err != nil {
				return false
			}
			text, err := r.RenderMode(src, nil, render.Text)
			if err != nil {
				return false
			}
			return tags.StripTags(debug) == text
		},
		markupGen,
	))

	properties.Property("bracket-free text passes through untouched", prop.ForAll(
		func(src string) bool {
			r := propRenderer()
			text, err := r.RenderMode(src, nil, render.Text)
			if err != nil {
				return false
			}
			term, err := r.RenderMode(src, nil, render.Term)
			return err == nil && text == src && term == src
		},
		gen.RegexMatch(`[a-z A-Z0-9_-]*`),
	))

	properties.Property("data always shadows context values", prop.ForAll(
		func(ctxVal, dataVal string) bool {
			r := propRenderer()
			r.Contexts().Set("k", ctxVal)
			out, err := r.RenderMode("{{ .k }}", map[string]any{"k": dataVal}, render.Text)
			return err == nil && out == dataVal
		},
		gen.RegexMatch(`[a-zA-Z0-9 ]*`),
		gen.RegexMatch(`[a-zA-Z0-9 ]+`),
	))

	properties.TestingRun(t)
}
