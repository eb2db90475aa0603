// Package topics provides a topic-based help system for Cobra CLI
// applications. Help text lives in plain .txt or .md files; the custom
// help command resolves names against the command tree first, then
// against the loaded topics, and can page long output through an
// external pager.
package topics

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/veneer/pkg/errors"
)

// Topic is a single help document loaded from the topics source.
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Options configures the Manager.
type Options struct {
	// Extensions is the list of file extensions to consider as topics.
	// Defaults to [".txt", ".md"] if not specified.
	Extensions []string

	// FS overrides the on-disk topics directory, for applications that
	// embed their help files.
	FS fs.FS

	// Renderer for formatting topic content (optional).
	// Defaults to PlainRenderer if not specified.
	Renderer Renderer

	// Pager is the command used by --page. Defaults to $PAGER, then
	// "less".
	Pager string
}

// Manager loads help topics and wires them into a cobra command tree.
type Manager struct {
	dir          string
	fsys         fs.FS
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	extensions   []string
	renderer     Renderer
	pager        string
}

// New creates a Manager reading topics from dir with default options.
func New(dir string) *Manager {
	return NewWithOptions(dir, Options{})
}

// NewWithOptions creates a Manager with custom options.
func NewWithOptions(dir string, opts Options) *Manager {
	m := &Manager{
		dir:        dir,
		fsys:       opts.FS,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
		pager:      opts.Pager,
	}

	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}

	return m
}

// scan loads every topic file under the configured source. A missing
// directory is not an error; the manager simply has no topics.
func (m *Manager) scan() error {
	fsys := m.fsys
	if fsys == nil {
		if _, err := os.Stat(m.dir); os.IsNotExist(err) {
			return nil
		}
		fsys = os.DirFS(m.dir)
	}

	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !m.supported(ext) {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFilesystemRead, "reading help topic %s", p)
		}

		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{
			Name:    name,
			Path:    p,
			Content: string(content),
		}
		return nil
	})
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Topic retrieves a topic by name. Flag-style lookups are supported:
// "--dry-run" resolves to a "dry-run" topic or an "option-dry-run"
// topic file.
func (m *Manager) Topic(name string) (*Topic, bool) {
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics["option-"+name]
	return t, ok
}

// Names returns all topic names, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Initialize sets up the topic-based help system with default options.
func Initialize(rootCmd *cobra.Command, topicsDir string) error {
	return InitializeWithOptions(rootCmd, topicsDir, Options{})
}

// InitializeWithOptions replaces rootCmd's help command with one that
// understands topics. The replacement resolves `help <name...>` against
// nested subcommands, then against topic files; `help topics` prints
// the topic index, and --page sends the output through a pager.
func InitializeWithOptions(rootCmd *cobra.Command, topicsDir string, opts Options) error {
	m := NewWithOptions(topicsDir, opts)

	if err := m.scan(); err != nil {
		return errors.Wrap(err, errors.ErrFilesystemRead, "failed to scan help topics")
	}

	m.originalHelp = rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + rootCmd.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + rootCmd.Name() + ` help topics`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		ValidArgsFunction: m.completions(rootCmd),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetBool("page")
			return m.run(rootCmd, args, page)
		},
	}
	helpCmd.Flags().Bool("page", false, "Display help through a pager")

	// Replace any existing help command.
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.AddCommand(helpCmd)

	// The --help flag also consults topics before falling back.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if t, ok := m.Topic(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), m.render(t))
				return
			}
		}
		m.originalHelp(cmd, args)
	})

	return nil
}

// run implements the help command body.
func (m *Manager) run(root *cobra.Command, args []string, page bool) error {
	if len(args) == 0 {
		return m.display(root, m.rootHelp(root), page)
	}

	if len(args) == 1 && args[0] == "topics" {
		return m.display(root, m.index(root), page)
	}

	// Command paths win over topics.
	cmd, rest, err := root.Find(args)
	if err == nil && cmd != root && len(rest) == 0 {
		return m.display(root, helpText(cmd), page)
	}

	if len(args) == 1 {
		if t, ok := m.Topic(args[0]); ok {
			return m.display(root, m.render(t), page)
		}
	}

	unknown := args[0]
	if err == nil && cmd != root && len(rest) > 0 {
		unknown = rest[0]
	}
	return errors.Newf(errors.ErrInvalidSubcommand,
		"unknown help topic or command %q", unknown)
}

// rootHelp is the root command's help followed by the topic listing.
func (m *Manager) rootHelp(root *cobra.Command) string {
	var b strings.Builder
	b.WriteString(helpText(root))

	general := m.generalNames()
	if len(general) == 0 {
		return b.String()
	}

	b.WriteString("\nAdditional help topics:\n")
	for _, name := range general {
		b.WriteString("  " + name + "\n")
	}
	b.WriteString("\nUse \"" + root.Name() + " help <topic>\" for more information about a topic.\n")
	return b.String()
}

// index is the full topic index shown by `help topics`.
func (m *Manager) index(root *cobra.Command) string {
	names := m.Names()
	if len(names) == 0 {
		return "No help topics available.\n"
	}

	var options, general []string
	for _, name := range names {
		if strings.HasPrefix(name, "option-") {
			options = append(options, strings.TrimPrefix(name, "option-"))
		} else {
			general = append(general, name)
		}
	}

	var b strings.Builder
	b.WriteString("Available help topics:\n")
	if len(general) > 0 {
		b.WriteString("\nGeneral topics:\n")
		for _, name := range general {
			b.WriteString("  " + name + "\n")
		}
	}
	if len(options) > 0 {
		b.WriteString("\nOption topics:\n")
		for _, name := range options {
			b.WriteString("  --" + name + "\n")
		}
	}
	b.WriteString("\nUse '" + root.Name() + " help <topic>' to read about a specific topic.\n")
	return b.String()
}

func (m *Manager) generalNames() []string {
	var general []string
	for _, name := range m.Names() {
		if !strings.HasPrefix(name, "option-") {
			general = append(general, name)
		}
	}
	return general
}

func (m *Manager) render(t *Topic) string {
	return m.renderer.Render(t.Content, path.Ext(t.Path))
}

// display writes text to the command's output, optionally through the
// pager. A failing pager falls back to plain output.
func (m *Manager) display(root *cobra.Command, text string, page bool) error {
	if page {
		if err := m.page(text); err == nil {
			return nil
		}
	}
	fmt.Fprint(root.OutOrStdout(), text)
	return nil
}

// page pipes text through the configured pager.
func (m *Manager) page(text string) error {
	pager := m.pager
	if pager == "" {
		pager = os.Getenv("PAGER")
	}
	if pager == "" {
		pager = "less"
	}

	parts := strings.Fields(pager)
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (m *Manager) completions(root *cobra.Command) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		completions := []string{"topics"}
		for _, c := range root.Commands() {
			if !c.Hidden {
				completions = append(completions, c.Name())
			}
		}
		completions = append(completions, m.Names()...)
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

// helpText reproduces cobra's default help layout for a command: the
// long (or short) description followed by the usage block.
func helpText(cmd *cobra.Command) string {
	var b strings.Builder
	if desc := cmd.Long; desc != "" {
		b.WriteString(strings.TrimRight(desc, "\n"))
		b.WriteString("\n\n")
	} else if cmd.Short != "" {
		b.WriteString(cmd.Short)
		b.WriteString("\n\n")
	}
	if cmd.Runnable() || cmd.HasSubCommands() {
		b.WriteString(cmd.UsageString())
	}
	return b.String()
}
