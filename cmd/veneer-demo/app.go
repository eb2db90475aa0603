package main

import (
	"embed"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/veneer/internal/version"
	"github.com/arthur-debert/veneer/pkg/command"
	"github.com/arthur-debert/veneer/pkg/config"
	"github.com/arthur-debert/veneer/pkg/logging"
	"github.com/arthur-debert/veneer/pkg/tabular"
	"github.com/arthur-debert/veneer/pkg/templates"
)

//go:embed templates
var templatesFS embed.FS

//go:embed topics
var topicsFS embed.FS

// newApp assembles the demo: configuration, templates, help topics, and
// the command tree.
func newApp() (*command.App, error) {
	initTemplateFormatting()

	settings, err := config.Load()
	if err != nil {
		return nil, err
	}

	reg := templates.NewRegistry()
	if err := reg.AddDefaultsFS(templates.DefaultsFS()); err != nil {
		return nil, err
	}
	demoTemplates, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, err
	}
	if err := reg.AddDefaultsFS(demoTemplates); err != nil {
		return nil, err
	}
	topics, err := fs.Sub(topicsFS, "topics")
	if err != nil {
		return nil, err
	}

	b := command.NewBuilder("veneer-demo").
		Short(MsgRootShort).
		Long(MsgRootLong).
		Version(version.Version).
		Settings(settings).
		Templates(reg).
		TopicsFS(topics).
		Context("app", map[string]any{"name": "veneer-demo", "version": version.Version}).
		AppState(settings)

	b.CommandWith("overview", command.Static(overviewData()), func(cfg *command.CommandConfig) {
		cfg.Short = MsgOverviewShort
	})
	b.Default("overview")

	b.Group("styles", func(g *command.Group) {
		g.CommandWith("list", listStyles(), func(cfg *command.CommandConfig) {
			cfg.Short = MsgStylesShort
			cfg.CSVSpec = []tabular.Column{
				{Header: "name", Key: "name"},
				{Header: "kind", Key: "kind"},
			}
		})
		g.CommandWith("show", showStyle(), func(cfg *command.CommandConfig) {
			cfg.Short = MsgShowShort
		})
	})

	b.Group("markup", func(g *command.Group) {
		g.CommandWith("render", renderMarkup(), func(cfg *command.CommandConfig) {
			cfg.Short = MsgRenderShort
			cfg.Template = "{{ .source }}"
		})
		g.CommandWith("events", listEvents(), func(cfg *command.CommandConfig) {
			cfg.Short = MsgEventsShort
		})
	})

	b.Group("widgets", func(g *command.Group) {
		g.CommandWith("table", serviceTable(), func(cfg *command.CommandConfig) {
			cfg.Short = MsgTableShort
			cfg.CSVSpec = []tabular.Column{
				{Header: "service", Key: "name"},
				{Header: "state", Key: "state"},
				{Header: "region", Key: "region"},
				{Header: "latency_ms", Key: "latency_ms"},
			}
		})
		g.CommandWith("columns", columnShowcase(), func(cfg *command.CommandConfig) {
			cfg.Short = MsgColumnsShort
		})
		g.Hooks("table", timingHooks())
	})

	b.Group("config", func(g *command.Group) {
		g.CommandWith("show", showConfig(), func(cfg *command.CommandConfig) {
			cfg.Short = MsgConfigShort
		})
		g.CommandWith("init", initConfig(), func(cfg *command.CommandConfig) {
			cfg.Short = MsgInitShort
			cfg.Template = `Wrote [path]{{ .path }}[/path]. Uncomment values there to override the defaults.`
		})
		g.CommandWith("paths", command.Static(configPaths()), func(cfg *command.CommandConfig) {
			cfg.Short = MsgPathsShort
		})
	})

	b.CommandWith("export", exportStylesheet(), func(cfg *command.CommandConfig) {
		cfg.Short = MsgExportShort
	})

	app, err := b.Build()
	if err != nil {
		return nil, err
	}
	command.Put(app.AppState(), app.Renderer().Theme())
	finishRoot(app, settings)
	return app, nil
}

// finishRoot dresses the generated cobra tree with the pieces the
// builder does not own: verbosity, usage formatting, per-command flags,
// and the maintenance commands.
func finishRoot(app *command.App, settings *config.Settings) {
	root := app.Root()
	root.DisableAutoGenTag = true
	root.SetUsageTemplate(MsgUsageTemplate)

	var verbosity int
	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logging.SetupLogger(effectiveVerbosity(verbosity, settings.Log.Level))
		log.Debug().Str("command", cmd.Name()).Msg("Command started")
	}

	if cc, _, err := root.Find([]string{"config", "init"}); err == nil && cc.Name() == "init" {
		cc.Flags().StringP("path", "p", "", "Write to this path instead of the default location")
	}

	root.AddCommand(versionCmd)
	root.AddCommand(completionCmd)
	root.AddCommand(manCmd)
}

// effectiveVerbosity lets -v flags win over the configured log level.
func effectiveVerbosity(flagCount int, level string) int {
	if flagCount > 0 {
		return flagCount
	}
	switch level {
	case "trace":
		return 3
	case "debug":
		return 2
	case "info":
		return 1
	default:
		return 0
	}
}
