package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/veneer/pkg/render"
)

func TestContextStaticValues(t *testing.T) {
	reg := render.NewContextRegistry()
	reg.Set("app_name", "veneer")
	reg.Set("version", "1.2.0")

	merged := reg.Resolve(render.RenderContext{}, map[string]any{"msg": "hi"})
	assert.Equal(t, "veneer", merged["app_name"])
	assert.Equal(t, "1.2.0", merged["version"])
	assert.Equal(t, "hi", merged["msg"])
}

func TestContextProviderSeesRenderContext(t *testing.T) {
	reg := render.NewContextRegistry()
	reg.Provide("line", func(rc render.RenderContext) any {
		return rc.Width
	})

	merged := reg.Resolve(render.RenderContext{Mode: render.Term, Width: 42}, nil)
	assert.Equal(t, 42, merged["line"])
}

func TestContextDataWins(t *testing.T) {
	reg := render.NewContextRegistry()
	reg.Set("user", "from-context")
	reg.Provide("host", func(render.RenderContext) any { return "from-provider" })

	data := map[string]any{"user": "from-data", "host": "also-from-data"}
	merged := reg.Resolve(render.RenderContext{}, data)
	assert.Equal(t, "from-data", merged["user"])
	assert.Equal(t, "also-from-data", merged["host"])
}

func TestContextLastRegistrationWins(t *testing.T) {
	reg := render.NewContextRegistry()
	reg.Set("k", "static")
	reg.Provide("k", func(render.RenderContext) any { return "provided" })
	assert.Equal(t, "provided", reg.Resolve(render.RenderContext{}, nil)["k"])

	reg.Set("k", "static-again")
	assert.Equal(t, "static-again", reg.Resolve(render.RenderContext{}, nil)["k"])
	assert.Equal(t, 1, reg.Len())
}

func TestContextMergeAndNames(t *testing.T) {
	a := render.NewContextRegistry()
	a.Set("one", 1)
	b := render.NewContextRegistry()
	b.Set("two", 2)
	b.Provide("three", func(render.RenderContext) any { return 3 })

	a.Merge(b)
	assert.Equal(t, []string{"one", "three", "two"}, a.Names())

	merged := a.Resolve(render.RenderContext{}, nil)
	assert.Equal(t, 1, merged["one"])
	assert.Equal(t, 2, merged["two"])
	assert.Equal(t, 3, merged["three"])
}

func TestContextResolveDoesNotMutateData(t *testing.T) {
	reg := render.NewContextRegistry()
	reg.Set("added", true)

	data := map[string]any{"msg": "hi"}
	merged := reg.Resolve(render.RenderContext{}, data)
	merged["later"] = "x"

	assert.Equal(t, map[string]any{"msg": "hi"}, data)
	assert.NotContains(t, data, "added")
}
