package command_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/veneer/pkg/command"
	"github.com/arthur-debert/veneer/pkg/errors"
	"github.com/arthur-debert/veneer/pkg/render"
	"github.com/arthur-debert/veneer/pkg/templates"
)

func TestDottedDispatch(t *testing.T) {
	app := buildApp(t, func(b *command.Builder) {
		b.Command("config.get", command.Static(map[string]any{"k": "v"}), "{{ .k }}")
	})

	res, err := app.Run([]string{"config", "get"})
	require.NoError(t, err)
	assert.Equal(t, "v", res.Text())

	res, err = app.Run([]string{"config", "get", "--output", "json"})
	require.NoError(t, err)
	assert.Contains(t, res.Text(), "\"k\": \"v\"")
}

func TestDefaultCommandSplicing(t *testing.T) {
	app := buildApp(t, func(b *command.Builder) {
		b.Command("list", command.Static(map[string]any{}), "listing")
		b.Command("add", command.Static(map[string]any{}), "adding")
		b.Default("list")
	})

	res, err := app.Run([]string{})
	require.NoError(t, err)
	assert.Equal(t, "listing", res.Text())

	res, err = app.Run([]string{"add"})
	require.NoError(t, err)
	assert.Equal(t, "adding", res.Text())
}

func TestDefaultSplicingPassesArgs(t *testing.T) {
	app := buildApp(t, func(b *command.Builder) {
		b.Command("list", command.HandlerFunc(func(m *command.Matches, _ *command.Context) (command.Output, error) {
			return command.RenderData(map[string]any{"args": m.Args}), nil
		}), "{{ range .args }}{{ . }} {{ end }}")
		b.Default("list")
	})

	res, err := app.Run([]string{"pending", "urgent"})
	require.NoError(t, err)
	assert.Equal(t, "pending urgent ", res.Text())
}

func TestDefaultSplicingKeepsFlags(t *testing.T) {
	app := buildApp(t, func(b *command.Builder) {
		b.Command("list", command.Static(map[string]any{"n": 3}), "{{ .n }} items")
		b.Default("list")
	})

	res, err := app.Run([]string{"--output", "json"})
	require.NoError(t, err)
	assert.Contains(t, res.Text(), "\"n\": 3")
}

func TestParseErrorWithoutDefault(t *testing.T) {
	app := buildApp(t, func(b *command.Builder) {
		b.Command("list", command.Static(map[string]any{}), "listing")
	})

	_, err := app.Run([]string{"bogus"})
	assert.Error(t, err)
}

func TestHookOrderAndComposition(t *testing.T) {
	var order []string
	var h command.Hooks
	for _, name := range []string{"h1", "h2", "h3"} {
		name := name
		h.OnPre(func(*command.Matches, *command.Context) error {
			order = append(order, name)
			return nil
		})
	}
	h.OnPost(func(_ *command.Matches, _ *command.Context, data any) (any, error) {
		order = append(order, "post1")
		m := data.(map[string]any)
		m["trail"] = "a"
		return m, nil
	})
	h.OnPost(func(_ *command.Matches, _ *command.Context, data any) (any, error) {
		order = append(order, "post2")
		m := data.(map[string]any)
		m["trail"] = m["trail"].(string) + "b"
		return m, nil
	})
	h.OnOutput(func(_ *command.Matches, _ *command.Context, out command.Rendered) (command.Rendered, error) {
		order = append(order, "out1")
		return command.RenderedText(strings.ToUpper(out.Text())), nil
	})

	app := buildApp(t, func(b *command.Builder) {
		b.Command("run", command.Static(map[string]any{}), "trail={{ .trail }}")
		b.Hooks("run", h)
	})

	res, err := app.Run([]string{"run"})
	require.NoError(t, err)
	assert.Equal(t, []string{"h1", "h2", "h3", "post1", "post2", "out1"}, order)
	assert.Equal(t, "TRAIL=AB", res.Text())
}

func TestHookFailFast(t *testing.T) {
	var order []string
	handlerRan := false
	var h command.Hooks
	h.OnPre(func(*command.Matches, *command.Context) error {
		order = append(order, "h1")
		return nil
	})
	h.OnPre(func(*command.Matches, *command.Context) error {
		order = append(order, "h2")
		return fmt.Errorf("denied")
	})
	h.OnPre(func(*command.Matches, *command.Context) error {
		order = append(order, "h3")
		return nil
	})
	h.OnPost(func(_ *command.Matches, _ *command.Context, data any) (any, error) {
		order = append(order, "post")
		return data, nil
	})

	app := buildApp(t, func(b *command.Builder) {
		b.Command("run", command.HandlerFunc(func(*command.Matches, *command.Context) (command.Output, error) {
			handlerRan = true
			return command.RenderData(map[string]any{}), nil
		}), "done")
		b.Hooks("run", h)
	})

	res, err := app.Run([]string{"run"})
	require.NoError(t, err)
	assert.Equal(t, []string{"h1", "h2"}, order)
	assert.False(t, handlerRan)
	assert.Equal(t, "Hook error: denied", res.Text())
	assert.Error(t, res.Err())
}

func TestPostDispatchHookError(t *testing.T) {
	var h command.Hooks
	h.OnPost(func(_ *command.Matches, _ *command.Context, data any) (any, error) {
		return nil, fmt.Errorf("mangled")
	})

	app := buildApp(t, func(b *command.Builder) {
		b.Command("run", command.Static(map[string]any{}), "done")
		b.Hooks("run", h)
	})

	res, err := app.Run([]string{"run"})
	require.NoError(t, err)
	assert.Equal(t, "Hook error: mangled", res.Text())
}

func TestPreHookInjectsExtensions(t *testing.T) {
	var h command.Hooks
	h.OnPre(func(_ *command.Matches, ctx *command.Context) error {
		command.Put(ctx.Extensions, requestID("r-42"))
		return nil
	})

	app := buildApp(t, func(b *command.Builder) {
		b.Command("whoami", command.HandlerFunc(func(_ *command.Matches, ctx *command.Context) (command.Output, error) {
			id := command.MustGet[requestID](ctx.Extensions)
			return command.RenderData(map[string]any{"id": string(id)}), nil
		}), "{{ .id }}")
		b.Hooks("whoami", h)
	})

	res, err := app.Run([]string{"whoami"})
	require.NoError(t, err)
	assert.Equal(t, "r-42", res.Text())
}

func TestAppStateShared(t *testing.T) {
	app := buildApp(t, func(b *command.Builder) {
		b.AppState(&dbHandle{dsn: "sqlite://mem"})
		b.Command("db", command.HandlerFunc(func(_ *command.Matches, ctx *command.Context) (command.Output, error) {
			db := command.MustGet[*dbHandle](ctx.AppState)
			return command.RenderData(map[string]any{"dsn": db.dsn}), nil
		}), "{{ .dsn }}")
	})

	res, err := app.Run([]string{"db"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite://mem", res.Text())
}

func TestSilentOutput(t *testing.T) {
	app := buildApp(t, func(b *command.Builder) {
		b.Command("hush", command.HandlerFunc(func(*command.Matches, *command.Context) (command.Output, error) {
			return command.Silent(), nil
		}), "never")
	})

	res, err := app.Run([]string{"hush"})
	require.NoError(t, err)
	assert.True(t, res.IsSilent())
	assert.Equal(t, "", res.Text())
}

func TestBinaryOutputWritesFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "report.bin")
	app := buildApp(t, func(b *command.Builder) {
		b.Command("export", command.HandlerFunc(func(*command.Matches, *command.Context) (command.Output, error) {
			return command.Binary([]byte{0xCA, 0xFE}, target), nil
		}), "")
	})

	res, err := app.Run([]string{"export"})
	require.NoError(t, err)
	assert.Equal(t, target, res.Filename())
	assert.Equal(t, "", res.Text())

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xCA, 0xFE}, written)
}

func TestOutputFilePathRedirectsText(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.txt")
	app := buildApp(t, func(b *command.Builder) {
		b.Command("greet", command.Static(map[string]any{"msg": "hi"}), "{{ .msg }}")
	})

	res, err := app.Run([]string{"greet", "--output-file-path", target})
	require.NoError(t, err)
	assert.Equal(t, "", res.Text())
	assert.Equal(t, target, res.Filename())

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(written))
}

func TestOutputFilePathRedirectsBinary(t *testing.T) {
	target := filepath.Join(t.TempDir(), "forced.bin")
	app := buildApp(t, func(b *command.Builder) {
		b.Command("export", command.HandlerFunc(func(*command.Matches, *command.Context) (command.Output, error) {
			return command.Binary([]byte("raw"), "suggested.bin"), nil
		}), "")
	})

	res, err := app.Run([]string{"export", "--output-file-path", target})
	require.NoError(t, err)
	assert.Equal(t, target, res.Filename())

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "raw", string(written))
}

func TestHandlerErrorFallbackText(t *testing.T) {
	app := buildApp(t, func(b *command.Builder) {
		b.Command("fail", command.HandlerFunc(func(*command.Matches, *command.Context) (command.Output, error) {
			return command.Output{}, fmt.Errorf("boom")
		}), "never")
	})

	res, err := app.Run([]string{"fail"})
	require.NoError(t, err)
	assert.Equal(t, "Error: boom", res.Text())
	assert.Error(t, res.Err())
}

func TestHandlerErrorUsesErrorTemplate(t *testing.T) {
	reg := templates.NewRegistry()
	require.NoError(t, reg.AddDefaultsFS(templates.DefaultsFS()))

	app := buildApp(t, func(b *command.Builder) {
		b.Templates(reg)
		b.Command("fail", command.HandlerFunc(func(*command.Matches, *command.Context) (command.Output, error) {
			return command.Output{}, fmt.Errorf("boom")
		}), "never")
	})

	res, err := app.Run([]string{"fail"})
	require.NoError(t, err)
	assert.Equal(t, "Error: boom", res.Text())
}

func TestHandlerErrorStructured(t *testing.T) {
	app := buildApp(t, func(b *command.Builder) {
		b.Command("fail", command.HandlerFunc(func(*command.Matches, *command.Context) (command.Output, error) {
			return command.Output{}, fmt.Errorf("boom")
		}), "never")
	})

	res, err := app.Run([]string{"fail", "--output", "json"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"error\": \"boom\"\n}", res.Text())
}

func TestInvalidOutputMode(t *testing.T) {
	app := buildApp(t, func(b *command.Builder) {
		b.Command("list", command.Static(map[string]any{}), "listing")
	})

	res, err := app.Run([]string{"list", "--output", "markdown"})
	require.NoError(t, err)
	assert.Contains(t, res.Text(), "invalid output mode")
	assert.Error(t, res.Err())
}

func TestDirectDispatch(t *testing.T) {
	app := buildApp(t, func(b *command.Builder) {
		b.Command("config.get", command.Static(map[string]any{"k": "v"}), "{{ .k }}")
	})

	res, err := app.Dispatch("config.get", nil, render.Text)
	require.NoError(t, err)
	assert.Equal(t, "v", res.Text())

	res, err = app.Dispatch("config.get", nil, render.Json)
	require.NoError(t, err)
	assert.Contains(t, res.Text(), "\"k\": \"v\"")

	_, err = app.Dispatch("missing", nil, render.Text)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidSubcommand))
}

func TestOutputFlagDisabled(t *testing.T) {
	b := command.NewBuilder("app").OutputFlag(false).RenderOptions(
		render.WithColor(false),
		render.WithWidth(40),
	)
	b.Command("list", command.Static(map[string]any{"k": "v"}), "{{ .k }}")
	app, err := b.Build()
	require.NoError(t, err)

	_, err = app.Run([]string{"list", "--output", "json"})
	assert.Error(t, err)

	res, err := app.Run([]string{"list"})
	require.NoError(t, err)
	assert.Equal(t, "v", res.Text())
}
