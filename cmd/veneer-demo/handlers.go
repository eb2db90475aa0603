package main

import (
	_ "embed"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/veneer/pkg/command"
	"github.com/arthur-debert/veneer/pkg/config"
	"github.com/arthur-debert/veneer/pkg/errors"
	"github.com/arthur-debert/veneer/pkg/logging"
	"github.com/arthur-debert/veneer/pkg/style"
	"github.com/arthur-debert/veneer/pkg/tags"
)

//go:embed starter-styles.yaml
var starterStylesheet []byte

// overviewData is the naked-invocation tour. The template adds the app
// name and version from the render context.
func overviewData() map[string]any {
	return map[string]any{
		"tagline": "plain data in, styled terminal output out",
		"features": []map[string]any{
			{"command": "styles list", "blurb": "the active theme as a live table"},
			{"command": "styles show NAME", "blurb": "one style, attribute by attribute"},
			{"command": "markup render TEXT", "blurb": "bracket markup straight from the shell"},
			{"command": "markup events TEXT", "blurb": "what the parser makes of your input"},
			{"command": "widgets table", "blurb": "bordered tables with value-driven styling"},
			{"command": "config show", "blurb": "effective settings, in any output mode"},
		},
	}
}

type styleRow struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Sample string `json:"sample"`
}

// listStyles tabulates every name the active theme resolves, each row
// carrying a sample styled with its own name.
func listStyles() command.Handler {
	return command.Data(func(m *command.Matches, ctx *command.Context) ([]styleRow, error) {
		theme := command.MustGet[*style.Theme](ctx.AppState)
		res, err := theme.Resolve(style.ColorDark)
		if err != nil {
			return nil, err
		}
		names := res.Names()
		rows := make([]styleRow, 0, len(names))
		for _, name := range names {
			kind := "style"
			if e, ok := theme.Base.Get(name); ok && e.IsAlias() {
				kind = "alias of " + e.Alias
			}
			rows = append(rows, styleRow{
				Name:   name,
				Kind:   kind,
				Sample: "[" + name + "]" + name + "[/" + name + "]",
			})
		}
		return rows, nil
	})
}

// showStyle renders a sample sentence in one named style.
func showStyle() command.Handler {
	return command.Data(func(m *command.Matches, ctx *command.Context) (map[string]any, error) {
		if len(m.Args) == 0 {
			return nil, errors.New(errors.ErrInvalidInput, "style name required, try \"success\"")
		}
		name := m.Args[0]
		theme := command.MustGet[*style.Theme](ctx.AppState)
		res, err := theme.Resolve(style.ColorDark)
		if err != nil {
			return nil, err
		}
		s, ok := res.Lookup(name)
		if !ok {
			return nil, errors.Newf(errors.ErrNotFound, "no style named %q in theme %q", name, theme.Name)
		}
		return map[string]any{
			"name":   name,
			"spec":   describeStyle(s),
			"sample": "[" + name + "]The quick brown fox jumps over the lazy dog[/" + name + "]",
		}, nil
	})
}

func describeStyle(s style.Style) string {
	var parts []string
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Dim {
		parts = append(parts, "dim")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	if s.Underline {
		parts = append(parts, "underline")
	}
	if s.Foreground != "" {
		parts = append(parts, "fg "+s.Foreground)
	}
	if s.Background != "" {
		parts = append(parts, "bg "+s.Background)
	}
	if s.Force {
		parts = append(parts, "forced")
	}
	if len(parts) == 0 {
		return "no attributes"
	}
	return strings.Join(parts, ", ")
}

// renderMarkup passes the joined arguments through the full pipeline,
// so --output term, text, and term-debug show the three faces of the
// same markup.
func renderMarkup() command.Handler {
	return command.Data(func(m *command.Matches, ctx *command.Context) (map[string]any, error) {
		if len(m.Args) == 0 {
			return nil, errors.New(errors.ErrInvalidInput, "markup text required, try \"[bold]hello[/bold]\"")
		}
		return map[string]any{"source": strings.Join(m.Args, " ")}, nil
	})
}

type eventRow struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Text string `json:"text"`
	Span string `json:"span"`
}

// listEvents exposes the parser's balanced event stream, including the
// synthetic ends inserted to recover unclosed tags.
func listEvents() command.Handler {
	return command.Data(func(m *command.Matches, ctx *command.Context) (map[string]any, error) {
		if len(m.Args) == 0 {
			return nil, errors.New(errors.ErrInvalidInput, "markup text required, try \"[bold]oops\"")
		}
		source := strings.Join(m.Args, " ")
		events := tags.Parse(source)
		rows := make([]eventRow, 0, len(events))
		for _, ev := range events {
			row := eventRow{Kind: ev.Kind.String(), Name: ev.Name, Text: ev.Text}
			if ev.Synthetic() {
				row.Span = "synthetic"
			} else {
				row.Span = spanString(ev.Start, ev.End)
			}
			rows = append(rows, row)
		}
		return map[string]any{"source": source, "events": rows}, nil
	})
}

func spanString(start, end int) string {
	return strconv.Itoa(start) + ".." + strconv.Itoa(end)
}

type service struct {
	Name    string `json:"name"`
	State   string `json:"state"`
	Region  string `json:"region"`
	Latency int    `json:"latency_ms"`
}

// serviceTable returns a fixed fleet whose state values double as style
// names, which is what the table's style_from_value column keys on.
func serviceTable() command.Handler {
	return command.Static([]service{
		{Name: "api-gateway", State: "ok", Region: "eu-west", Latency: 12},
		{Name: "billing", State: "warn", Region: "us-east", Latency: 187},
		{Name: "ingest", State: "ok", Region: "us-east", Latency: 33},
		{Name: "mailer", State: "fail", Region: "ap-south", Latency: 0},
		{Name: "search", State: "ok", Region: "eu-west", Latency: 54},
	})
}

// columnShowcase feeds the column, padding, and truncation filters.
func columnShowcase() command.Handler {
	return command.Static(map[string]any{
		"entries": []map[string]any{
			{"name": "default.yaml", "size": "2.1K", "path": "/home/demo/.local/share/veneer/styles/default.yaml"},
			{"name": "overview.tmpl", "size": "412", "path": "/home/demo/.local/share/veneer/templates/overview.tmpl"},
			{"name": "veneer.toml", "size": "688", "path": "/home/demo/.config/veneer/veneer.toml"},
			{"name": "a-template-with-a-very-long-name.tmpl", "size": "96", "path": "/tmp/scratch/a-template-with-a-very-long-name.tmpl"},
		},
	})
}

// showConfig exposes the settings the app booted with.
func showConfig() command.Handler {
	return command.Data(func(m *command.Matches, ctx *command.Context) (*config.Settings, error) {
		if s, ok := command.Get[*config.Settings](ctx.AppState); ok {
			return s, nil
		}
		return config.DefaultSettings(), nil
	})
}

// initConfig writes the commented default configuration file. An
// existing file is never overwritten.
func initConfig() command.Handler {
	return command.Data(func(m *command.Matches, ctx *command.Context) (map[string]any, error) {
		path, _ := m.Flags().GetString("path")
		if path == "" {
			path = config.ConfigFile()
		}
		if err := config.WriteDefault(path); err != nil {
			return nil, err
		}
		return map[string]any{"path": path}, nil
	})
}

func configPaths() map[string]any {
	return map[string]any{
		"config":    config.ConfigFile(),
		"templates": config.TemplatesDir(),
		"styles":    config.StylesDir(),
	}
}

// exportStylesheet emits the starter stylesheet as a binary download;
// without --output-file-path it lands in ./veneer-styles.yaml.
func exportStylesheet() command.Handler {
	return command.HandlerFunc(func(m *command.Matches, ctx *command.Context) (command.Output, error) {
		return command.Binary(starterStylesheet, "veneer-styles.yaml"), nil
	})
}

type handlerTimer struct {
	start time.Time
}

// timingHooks brackets a dispatch with a pre/post pair that reports the
// handler's wall time on the debug log.
func timingHooks() command.Hooks {
	var h command.Hooks
	h.OnPre(func(m *command.Matches, ctx *command.Context) error {
		command.Put(ctx.Extensions, handlerTimer{start: time.Now()})
		return nil
	})
	h.OnPost(func(m *command.Matches, ctx *command.Context, data any) (any, error) {
		if t, ok := command.Get[handlerTimer](ctx.Extensions); ok {
			logging.GetLogger("demo").Debug().
				Str("command", ctx.Path).
				Dur("elapsed", time.Since(t.start)).
				Msg("handler finished")
		}
		return data, nil
	})
	return h
}
