//go:build property
// +build property

package tags_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/arthur-debert/veneer/pkg/style"
	"github.com/arthur-debert/veneer/pkg/tags"
)

// TestTokenizerProperties checks the lexer invariants over arbitrary input.
func TestTokenizerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("token spans reproduce the input", prop.ForAll(
		func(input string) bool {
			var b strings.Builder
			prev := 0
			for _, tok := range tags.Tokenize(input) {
				if tok.Start != prev || input[tok.Start:tok.End] != tok.Content {
					return false
				}
				b.WriteString(tok.Content)
				prev = tok.End
			}
			return b.String() == input
		},
		gen.AnyString(),
	))

	properties.Property("text tokens never contain a renderable tag", prop.ForAll(
		func(input string) bool {
			for _, tok := range tags.Tokenize(input) {
				if tok.Kind != tags.TokenText {
					continue
				}
				open := strings.IndexByte(tok.Content, '[')
				if open >= 0 && strings.IndexByte(tok.Content[open:], ']') >= 0 {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// TestParserProperties checks that Parse always yields a balanced stream.
func TestParserProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("event stream is balanced and nested", prop.ForAll(
		func(input string) bool {
			var stack []string
			for _, ev := range tags.Parse(input) {
				switch ev.Kind {
				case tags.EventStart:
					stack = append(stack, ev.Name)
				case tags.EventEnd:
					if len(stack) == 0 || stack[len(stack)-1] != ev.Name {
						return false
					}
					stack = stack[:len(stack)-1]
				}
			}
			return len(stack) == 0
		},
		gen.AnyString(),
	))

	properties.Property("generated tag spans parse to start/end pairs", prop.ForAll(
		func(name, body string) bool {
			if !tags.ValidTagName(name) {
				return true
			}
			if strings.ContainsAny(body, "[]") {
				return true
			}
			input := "[" + name + "]" + body + "[/" + name + "]"
			events := tags.Parse(input)
			if len(events) == 0 {
				return false
			}
			first, last := events[0], events[len(events)-1]
			return first.Kind == tags.EventStart && first.Name == name &&
				last.Kind == tags.EventEnd && last.Name == name && !last.Synthetic()
		},
		gen.RegexMatch(`^[a-z_][a-z0-9_-]*$`),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// TestRenderProperties checks transform invariants over arbitrary input.
func TestRenderProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	empty, err := style.NewRegistry().Resolve(style.WithRenderer(testRenderer()))
	if err != nil {
		t.Fatal(err)
	}
	keep := tags.NewRenderer(empty, tags.Keep, tags.Passthrough)
	strip := tags.NewRenderer(empty, tags.Apply, tags.Strip)
	remove := tags.NewRenderer(empty, tags.Remove, tags.Passthrough)

	properties.Property("keep transform is the identity", prop.ForAll(
		func(input string) bool {
			return keep.Render(input) == input
		},
		gen.AnyString(),
	))

	properties.Property("apply+strip over an empty registry equals StripTags", prop.ForAll(
		func(input string) bool {
			return strip.Render(input) == tags.StripTags(input)
		},
		gen.AnyString(),
	))

	properties.Property("bracket-free text passes through every transform", prop.ForAll(
		func(input string) bool {
			if strings.ContainsAny(input, "[]") {
				return true
			}
			return keep.Render(input) == input &&
				remove.Render(input) == input &&
				strip.Render(input) == input
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
