//go:build property
// +build property

package command_test

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/arthur-debert/veneer/pkg/command"
	"github.com/arthur-debert/veneer/pkg/render"
)

func TestHookChainProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("hooks run in order until the first failure", prop.ForAll(
		func(total, failAt int) bool {
			if failAt >= total {
				failAt = -1 // no failure
			}
			var ran []int
			handlerRan := false

			var h command.Hooks
			for i := 0; i < total; i++ {
				i := i
				h.OnPre(func(*command.Matches, *command.Context) error {
					ran = append(ran, i)
					if i == failAt {
						return fmt.Errorf("hook %d failed", i)
					}
					return nil
				})
			}

			b := command.NewBuilder("app").RenderOptions(render.WithColor(false))
			b.Command("run", command.HandlerFunc(func(*command.Matches, *command.Context) (command.Output, error) {
				handlerRan = true
				return command.RenderData(map[string]any{}), nil
			}), "done")
			b.Hooks("run", h)
			app, err := b.Build()
			if err != nil {
				return false
			}

			res, err := app.Run([]string{"run"})
			if err != nil {
				return false
			}

			if failAt < 0 {
				if !handlerRan || len(ran) != total {
					return false
				}
				return res.Text() == "done"
			}
			if handlerRan || len(ran) != failAt+1 {
				return false
			}
			for i, got := range ran {
				if got != i {
					return false
				}
			}
			return res.Text() == fmt.Sprintf("Hook error: hook %d failed", failAt)
		},
		gen.IntRange(0, 8),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}
