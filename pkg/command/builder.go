package command

import (
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/veneer/pkg/cobrax/topics"
	"github.com/arthur-debert/veneer/pkg/config"
	"github.com/arthur-debert/veneer/pkg/errors"
	"github.com/arthur-debert/veneer/pkg/logging"
	"github.com/arthur-debert/veneer/pkg/render"
	"github.com/arthur-debert/veneer/pkg/style"
	"github.com/arthur-debert/veneer/pkg/tabular"
	"github.com/arthur-debert/veneer/pkg/templates"
)

// registration is one bound command path.
type registration struct {
	path         string
	handler      Handler
	template     string // inline template source
	templateName string // derived registry name when no inline source
	short        string
	long         string
	hooks        Hooks
	csvSpec      []tabular.Column
}

// CommandConfig collects the per-command settings CommandWith exposes.
type CommandConfig struct {
	// Template is inline template source; when empty, the builder
	// derives a registry name from the command path.
	Template string
	// Short and Long feed the generated cobra command's help.
	Short string
	Long  string
	// Hooks attach to this command only.
	Hooks Hooks
	// CSVSpec orders and selects columns for CSV output.
	CSVSpec []tabular.Column
}

// Builder accumulates command registrations and produces an App.
// Registration errors are collected and surfaced by Build, so call
// chains stay fluent.
type Builder struct {
	name    string
	short   string
	long    string
	version string

	commands    map[string]*registration
	order       []string
	pending     map[string]Hooks
	defaultPath string
	appState    *Extensions

	theme         *style.Theme
	library       *style.Library
	settings      *config.Settings
	templates     *templates.Registry
	contexts      *render.ContextRegistry
	renderOpts    []render.Option
	outputFlag    bool
	outputFlagSet bool

	topicsDir   string
	topicsFS    fs.FS
	topicsPager string

	errs []error
}

// NewBuilder starts a builder for the named program.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:       name,
		commands:   make(map[string]*registration),
		pending:    make(map[string]Hooks),
		appState:   NewExtensions(),
		contexts:   render.NewContextRegistry(),
		outputFlag: true,
	}
}

// Short sets the one-line program description.
func (b *Builder) Short(s string) *Builder {
	b.short = s
	return b
}

// Long sets the extended program description.
func (b *Builder) Long(s string) *Builder {
	b.long = s
	return b
}

// Version sets the version cobra reports for --version.
func (b *Builder) Version(v string) *Builder {
	b.version = v
	return b
}

// Theme sets the theme all renders resolve against. It wins over any
// Library or Settings theme selection.
func (b *Builder) Theme(t *style.Theme) *Builder {
	b.theme = t
	return b
}

// Library attaches a theme library. The Settings theme name resolves
// against it; without one, the library default is used.
func (b *Builder) Library(lib *style.Library) *Builder {
	b.library = lib
	return b
}

// Settings applies loaded configuration to the build: the output
// flag and default mode, template directories and extension,
// stylesheet directories, the missing-style indicator, and the help
// pager. Explicit builder calls win over settings values.
func (b *Builder) Settings(s *config.Settings) *Builder {
	b.settings = s
	return b
}

// Topics mounts a help-topic directory on the app's help command.
func (b *Builder) Topics(dir string) *Builder {
	b.topicsDir = dir
	return b
}

// TopicsFS mounts embedded help topics on the app's help command.
func (b *Builder) TopicsFS(fsys fs.FS) *Builder {
	b.topicsFS = fsys
	return b
}

// Templates attaches the template registry commands derive their
// templates from.
func (b *Builder) Templates(reg *templates.Registry) *Builder {
	b.templates = reg
	return b
}

// Context registers a static context value injected under every
// template's data.
func (b *Builder) Context(name string, value any) *Builder {
	b.contexts.Set(name, value)
	return b
}

// ContextProvider registers a computed context value.
func (b *Builder) ContextProvider(name string, fn render.Provider) *Builder {
	b.contexts.Provide(name, fn)
	return b
}

// RenderOptions forwards extra options to the renderer, mainly for
// pinning probes in tests.
func (b *Builder) RenderOptions(opts ...render.Option) *Builder {
	b.renderOpts = append(b.renderOpts, opts...)
	return b
}

// OutputFlag controls whether the global --output flag is added.
// It defaults to on.
func (b *Builder) OutputFlag(enabled bool) *Builder {
	b.outputFlag = enabled
	b.outputFlagSet = true
	return b
}

// AppState inserts a value into the app-scoped extensions container,
// shared read-only across all dispatches.
func (b *Builder) AppState(value any) *Builder {
	b.appState.insert(value)
	return b
}

// Command registers a handler at a dotted path with an inline
// template. An empty template makes the builder derive one from the
// path against the template registry.
func (b *Builder) Command(path string, h Handler, template string) *Builder {
	b.register(&registration{path: path, handler: h, template: template})
	return b
}

// CommandWith registers a handler with inline configuration.
func (b *Builder) CommandWith(path string, h Handler, configure func(*CommandConfig)) *Builder {
	cfg := CommandConfig{}
	if configure != nil {
		configure(&cfg)
	}
	b.register(&registration{
		path:     path,
		handler:  h,
		template: cfg.Template,
		short:    cfg.Short,
		long:     cfg.Long,
		hooks:    cfg.Hooks,
		csvSpec:  cfg.CSVSpec,
	})
	return b
}

// Group nests registrations under a name prefix. Children registered
// inside the closure get re-prefixed with "name.".
func (b *Builder) Group(name string, fn func(*Group)) *Builder {
	fn(&Group{b: b, prefix: name})
	return b
}

// Commands declares a batch of registrations in one closure. It is the
// unprefixed form of Group, for building the whole tree as a single
// expression.
func (b *Builder) Commands(fn func(*Group)) *Builder {
	fn(&Group{b: b})
	return b
}

// Hooks attaches hooks to an already- or soon-to-be-registered path.
// Unknown paths fail the build.
func (b *Builder) Hooks(path string, hooks Hooks) *Builder {
	merged := b.pending[path]
	merged.Merge(hooks)
	b.pending[path] = merged
	return b
}

// Default selects the command dispatched on a naked invocation.
func (b *Builder) Default(path string) *Builder {
	b.defaultPath = path
	return b
}

func (b *Builder) register(reg *registration) {
	if err := validatePath(reg.path); err != nil {
		b.errs = append(b.errs, err)
		return
	}
	if _, exists := b.commands[reg.path]; exists {
		b.errs = append(b.errs, errors.Newf(errors.ErrDuplicateCommand,
			"command %q is already registered", reg.path))
		return
	}
	b.commands[reg.path] = reg
	b.order = append(b.order, reg.path)
}

func validatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "command path must not be empty")
	}
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return errors.Newf(errors.ErrInvalidInput, "command path %q has an empty segment", path)
		}
	}
	return nil
}

// Group registers commands under a shared dotted prefix. A zero
// prefix (the Commands form) registers at the root.
type Group struct {
	b      *Builder
	prefix string
}

func (g *Group) join(path string) string {
	if g.prefix == "" {
		return path
	}
	return g.prefix + "." + path
}

// Command registers a handler relative to the group prefix.
func (g *Group) Command(path string, h Handler, template string) *Group {
	g.b.Command(g.join(path), h, template)
	return g
}

// CommandWith registers a configured handler relative to the group
// prefix.
func (g *Group) CommandWith(path string, h Handler, configure func(*CommandConfig)) *Group {
	g.b.CommandWith(g.join(path), h, configure)
	return g
}

// Group nests a further prefix level.
func (g *Group) Group(name string, fn func(*Group)) *Group {
	fn(&Group{b: g.b, prefix: g.join(name)})
	return g
}

// Hooks attaches hooks to a path relative to the group prefix.
func (g *Group) Hooks(path string, hooks Hooks) *Group {
	g.b.Hooks(g.join(path), hooks)
	return g
}

// Build validates the registrations, applies settings, derives
// templates, and produces the runnable App. The first setup error
// aborts the build.
func (b *Builder) Build() (*App, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if err := b.attachPending(); err != nil {
		return nil, err
	}
	if err := b.checkDefault(); err != nil {
		return nil, err
	}
	if err := b.applySettings(); err != nil {
		return nil, err
	}
	theme, err := b.resolveTheme()
	if err != nil {
		return nil, err
	}
	b.deriveTemplates()

	reg := b.templates
	if reg == nil {
		reg = templates.NewRegistry()
	}

	rendererOpts := append([]render.Option{
		render.WithTheme(theme),
		render.WithTemplates(reg),
		render.WithContexts(b.contexts),
	}, b.renderOpts...)

	app := &App{
		name:        b.name,
		commands:    b.commands,
		defaultPath: b.defaultPath,
		appState:    b.appState,
		renderer:    render.NewRenderer(rendererOpts...),
		templates:   reg,
		outputFlag:  b.outputFlag,
		log:         logging.GetLogger("command"),
	}
	app.buildTree(b)
	if err := b.mountTopics(app); err != nil {
		return nil, err
	}
	return app, nil
}

// applySettings folds loaded configuration into the build. Settings
// sit below explicit builder calls, so renderer options derived here
// are prepended and the output flag only applies when OutputFlag was
// never called.
func (b *Builder) applySettings() error {
	s := b.settings
	if s == nil {
		return nil
	}

	if !b.outputFlagSet {
		b.outputFlag = s.Output.Flag
	}
	var derived []render.Option
	if s.Output.DefaultMode != "" {
		mode, err := render.ParseMode(s.Output.DefaultMode)
		if err != nil {
			return err
		}
		derived = append(derived, render.WithDefaultMode(mode))
	}
	if s.Styles.MissingIndicator != "" {
		derived = append(derived, render.WithMissingIndicator(s.Styles.MissingIndicator))
	}
	if len(derived) > 0 {
		b.renderOpts = append(derived, b.renderOpts...)
	}

	if s.Templates.Extension != "" || s.Templates.DevReload || len(s.Templates.Dirs) > 0 {
		if b.templates == nil {
			b.templates = templates.NewRegistry()
		}
		var opts []templates.Option
		if s.Templates.Extension != "" {
			opts = append(opts, templates.WithExtensions(promoteExt(s.Templates.Extension)...))
		}
		if s.Templates.DevReload {
			opts = append(opts, templates.WithDevReload(true))
		}
		b.templates.Configure(opts...)
		for _, dir := range s.Templates.Dirs {
			if err := b.templates.AddDir(dir); err != nil {
				return err
			}
		}
	}

	if len(s.Styles.Dirs) > 0 {
		if b.library == nil {
			b.library = style.NewLibrary()
		}
		for _, dir := range s.Styles.Dirs {
			if err := b.library.LoadDir(dir); err != nil {
				return err
			}
		}
	}

	if b.topicsPager == "" {
		b.topicsPager = s.Help.Pager
	}
	return nil
}

// promoteExt builds an extension priority list with ext first.
func promoteExt(ext string) []string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	exts := []string{ext}
	for _, e := range templates.DefaultExtensions {
		if e != ext {
			exts = append(exts, e)
		}
	}
	return exts
}

// resolveTheme picks the theme: an explicit Theme call wins, then the
// Settings theme name against the library, then the library default.
func (b *Builder) resolveTheme() (*style.Theme, error) {
	if b.theme != nil {
		return b.theme, nil
	}
	lib := b.library
	if lib == nil {
		lib = style.NewLibrary()
	}
	if b.settings != nil && b.settings.Theme != "" {
		return lib.Theme(b.settings.Theme)
	}
	return lib.Default(), nil
}

// mountTopics wires the help-topic system onto the built command
// tree.
func (b *Builder) mountTopics(app *App) error {
	if b.topicsDir == "" && b.topicsFS == nil {
		return nil
	}
	return topics.InitializeWithOptions(app.root, b.topicsDir, topics.Options{
		FS:       b.topicsFS,
		Renderer: topics.NewGlamourRenderer(),
		Pager:    b.topicsPager,
	})
}

// attachPending merges path-addressed hooks into their registrations.
func (b *Builder) attachPending() error {
	for path, hooks := range b.pending {
		reg, ok := b.commands[path]
		if !ok {
			return errors.Newf(errors.ErrNotFound, "hooks reference unregistered command %q", path)
		}
		reg.hooks.Merge(hooks)
	}
	return nil
}

// checkDefault verifies the default path exists and that no root-level
// command shadows a direct child of the default's group, which would
// make a spliced invocation ambiguous.
func (b *Builder) checkDefault() error {
	if b.defaultPath == "" {
		return nil
	}
	if _, ok := b.commands[b.defaultPath]; !ok {
		return errors.Newf(errors.ErrNotFound, "default command %q is not registered", b.defaultPath)
	}
	for _, path := range b.order {
		if strings.Contains(path, ".") {
			continue
		}
		child := b.defaultPath + "." + path
		if _, ok := b.commands[child]; ok {
			return errors.Newf(errors.ErrCommandConflict,
				"root command %q conflicts with %q under the default command", path, child).
				WithDetail("root", path).
				WithDetail("default_child", child)
		}
	}
	return nil
}

// deriveTemplates resolves a registry template name for every command
// registered without an inline template. Dots become slashes; the
// registry's extension rules pick the file. Commands that resolve
// nothing keep an empty template, which serializes directly in
// structured modes and renders nothing otherwise.
func (b *Builder) deriveTemplates() {
	if b.templates == nil {
		return
	}
	for _, path := range b.order {
		reg := b.commands[path]
		if reg.template != "" {
			continue
		}
		name := strings.ReplaceAll(path, ".", "/")
		if _, ok := b.templates.Resolve(name); ok {
			reg.templateName = name
		}
	}
}

// buildTree constructs the cobra command hierarchy from the dotted
// paths, in registration order.
func (a *App) buildTree(b *Builder) {
	root := &cobra.Command{
		Use:           a.name,
		Short:         b.short,
		Long:          b.long,
		Version:       b.version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if a.outputFlag {
		root.PersistentFlags().String("output", "auto",
			"Output mode (auto, term, text, term-debug, json, yaml, xml, csv)")
	}
	root.PersistentFlags().String("output-file-path", "",
		"Write output to this file instead of stdout")

	nodes := map[string]*cobra.Command{"": root}
	ensure := func(path string) *cobra.Command {
		if cc, ok := nodes[path]; ok {
			return cc
		}
		parent := root
		built := ""
		for _, seg := range strings.Split(path, ".") {
			if built == "" {
				built = seg
			} else {
				built = built + "." + seg
			}
			cc, ok := nodes[built]
			if !ok {
				cc = &cobra.Command{Use: seg, SilenceUsage: true, SilenceErrors: true}
				parent.AddCommand(cc)
				nodes[built] = cc
			}
			parent = cc
		}
		return parent
	}

	for _, path := range b.order {
		reg := b.commands[path]
		cc := ensure(path)
		if reg.short != "" {
			cc.Short = reg.short
		}
		if reg.long != "" {
			cc.Long = reg.long
		}
		bound := path
		cc.Args = cobra.ArbitraryArgs
		cc.RunE = func(cmd *cobra.Command, args []string) error {
			result := a.dispatch(bound, cmd, args)
			a.result = &result
			return nil
		}
	}
	a.root = root
}
