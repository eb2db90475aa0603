package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/veneer/pkg/errors"
	"github.com/arthur-debert/veneer/pkg/render"
	"github.com/arthur-debert/veneer/pkg/templates"
)

// App is a built command tree ready to dispatch. One Run call performs
// one parse-dispatch-render cycle.
type App struct {
	name        string
	root        *cobra.Command
	commands    map[string]*registration
	defaultPath string
	appState    *Extensions
	renderer    *render.Renderer
	templates   *templates.Registry
	outputFlag  bool
	stderr      io.Writer
	log         zerolog.Logger

	result *RunResult
}

// Root exposes the underlying cobra command, for attaching help
// topics, completion, or extra flags before Run.
func (a *App) Root() *cobra.Command { return a.root }

// Renderer exposes the renderer dispatches go through.
func (a *App) Renderer() *render.Renderer { return a.renderer }

// AppState exposes the shared extensions container.
func (a *App) AppState() *Extensions { return a.appState }

// Run parses args (without the program name) and executes the matched
// command. Parse errors come back as the error value so the caller
// keeps the parser's exit code; runtime failures inside a dispatch are
// captured into the RunResult instead.
func (a *App) Run(args []string) (RunResult, error) {
	a.result = nil
	a.root.SetArgs(a.spliceDefault(args))
	if err := a.root.Execute(); err != nil {
		return RunResult{}, err
	}
	if a.result != nil {
		return *a.result, nil
	}
	// No dispatch ran: cobra handled the invocation itself (help,
	// version, a bare group).
	return SilentResult(), nil
}

// spliceDefault inserts the default command's segments in front of the
// arguments when no registered subcommand matches, so a naked
// invocation behaves as if the default had been typed. The splice is
// attempted once; when the spliced form still resolves nothing
// runnable, the original arguments proceed and produce the original
// error.
func (a *App) spliceDefault(args []string) []string {
	if a.defaultPath == "" {
		return args
	}
	cmd, _, err := a.root.Find(args)
	if err == nil && cmd != a.root && cmd.Runnable() {
		return args
	}
	spliced := append(strings.Split(a.defaultPath, "."), args...)
	cmd, _, err = a.root.Find(spliced)
	if err == nil && cmd != a.root && cmd.Runnable() {
		a.log.Debug().Str("default", a.defaultPath).Msg("spliced default command")
		return spliced
	}
	return args
}

// mode reads the --output flag off the matched command. Without the
// flag, or when the user left it untouched, the renderer's default
// mode applies.
func (a *App) mode(cc *cobra.Command) (render.Mode, error) {
	if !a.outputFlag || cc == nil {
		return a.renderer.DefaultMode(), nil
	}
	flags := cc.Flags()
	if !flags.Changed("output") {
		return a.renderer.DefaultMode(), nil
	}
	raw, err := flags.GetString("output")
	if err != nil {
		return a.renderer.DefaultMode(), nil
	}
	return render.ParseMode(raw)
}

// filePath reads the --output-file-path flag off the matched command.
func (a *App) filePath(cc *cobra.Command) string {
	if cc == nil {
		return ""
	}
	path, err := cc.Flags().GetString("output-file-path")
	if err != nil {
		return ""
	}
	return path
}

// dispatch runs one matched command, with the mode taken from the
// --output flag.
func (a *App) dispatch(path string, cc *cobra.Command, args []string) RunResult {
	mode, err := a.mode(cc)
	if err != nil {
		return handledErr(err.Error(), err)
	}
	return a.dispatchMode(path, cc, args, mode)
}

// dispatchMode runs one matched command through the full chain: pre
// hooks, handler, post hooks, render or serialize, output hooks,
// optional file write. Every runtime failure is captured into the
// result.
func (a *App) dispatchMode(path string, cc *cobra.Command, args []string, mode render.Mode) RunResult {
	reg := a.commands[path]
	m := &Matches{Command: cc, Args: args}
	ctx := &Context{Path: path, AppState: a.appState, Extensions: NewExtensions()}

	a.log.Debug().Str("path", path).Str("mode", mode.String()).Msg("dispatching")

	if err := reg.hooks.runPre(m, ctx); err != nil {
		return handledErr(err.Error(), err)
	}

	out, err := reg.handler.Handle(m, ctx)
	if err != nil {
		return a.errResult(err, mode)
	}

	switch {
	case out.IsSilent():
		rendered, err := reg.hooks.runOutput(m, ctx, RenderedSilent())
		if err != nil {
			return handledErr(err.Error(), err)
		}
		return a.finish(rendered, a.filePath(cc))

	case out.IsBinary():
		payload, filename := out.Payload()
		rendered, err := reg.hooks.runOutput(m, ctx, RenderedBinary(payload, filename))
		if err != nil {
			return handledErr(err.Error(), err)
		}
		return a.finish(rendered, a.filePath(cc))

	default:
		data, err := render.Normalize(out.Data())
		if err != nil {
			return a.errResult(err, mode)
		}
		data, err = reg.hooks.runPost(m, ctx, data)
		if err != nil {
			return handledErr(err.Error(), err)
		}

		text, err := a.renderData(reg, data, mode)
		if err != nil {
			return a.errResult(err, mode)
		}

		rendered, err := reg.hooks.runOutput(m, ctx, RenderedText(text))
		if err != nil {
			return handledErr(err.Error(), err)
		}
		return a.finish(rendered, a.filePath(cc))
	}
}

// renderData turns the post-hook data tree into output text. Inline
// templates render as-is; derived templates resolve through the
// registry on every dispatch so hot-reload stays live. With no
// template at all, structured modes still serialize and text modes
// yield nothing.
func (a *App) renderData(reg *registration, data any, mode render.Mode) (string, error) {
	switch {
	case reg.template != "":
		return a.renderer.RenderModeSpec(reg.template, data, mode, reg.csvSpec)
	case reg.templateName != "":
		return a.renderer.RenderNamedSpec(reg.templateName, data, mode, reg.csvSpec)
	case mode.Structured():
		return render.Serialize(data, mode, reg.csvSpec)
	default:
		return "", nil
	}
}

// errResult captures a runtime error as printable output. Structured
// modes serialize {"error": …}; text modes try the registered error
// template and fall back to a plain prefix.
func (a *App) errResult(err error, mode render.Mode) RunResult {
	a.log.Debug().Err(err).Msg("dispatch failed")
	msg := err.Error()
	if mode.Structured() {
		text, serr := render.Serialize(map[string]any{"error": msg}, mode, nil)
		if serr == nil {
			return handledErr(text, err)
		}
		return handledErr(msg, err)
	}
	if a.templates != nil {
		if _, ok := a.templates.Resolve("error"); ok {
			text, rerr := a.renderer.RenderNamed("error", map[string]any{"error": msg}, mode)
			if rerr == nil {
				return handledErr(text, err)
			}
		}
	}
	return handledErr("Error: "+msg, err)
}

// finish applies the file redirect and wraps the rendered output. A
// successful file write leaves stdout silent; write failures go to
// stderr and the dispatch stays non-fatal.
func (a *App) finish(rendered Rendered, filePath string) RunResult {
	switch {
	case rendered.IsSilent():
		return SilentResult()

	case rendered.IsBinary():
		payload, filename := rendered.Payload()
		target := filePath
		if target == "" {
			target = filename
		}
		if target == "" {
			target = a.name + ".out"
		}
		if err := os.WriteFile(target, payload, 0o644); err != nil {
			fmt.Fprintf(a.stderrWriter(), "failed to write %s: %v\n", target, err)
			return handledErr("", err)
		}
		return FileResult(target)

	case filePath != "":
		if err := os.WriteFile(filePath, []byte(rendered.Text()), 0o644); err != nil {
			fmt.Fprintf(a.stderrWriter(), "failed to write %s: %v\n", filePath, err)
			return Handled(rendered.Text())
		}
		return FileResult(filePath)

	default:
		return Handled(rendered.Text())
	}
}

func (a *App) stderrWriter() io.Writer {
	if a.stderr != nil {
		return a.stderr
	}
	return os.Stderr
}

// SetStderr redirects dispatch-time I/O error messages, mainly for
// tests.
func (a *App) SetStderr(w io.Writer) { a.stderr = w }

// Main runs the app against os.Args and prints the result, returning
// the process exit code. Parse errors keep cobra's message on stderr
// and exit 1; dispatched results print and exit 0, with the error text
// itself signaling failures.
func (a *App) Main() int {
	result, err := a.Run(os.Args[1:])
	if err != nil {
		fmt.Fprintln(a.stderrWriter(), "Error:", err)
		return 1
	}
	if text := result.Text(); text != "" {
		fmt.Fprint(os.Stdout, text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(os.Stdout)
		}
	}
	return 0
}

// Dispatch runs a single dotted path directly with an explicit mode,
// bypassing argument parsing. Unknown paths fail with
// InvalidSubcommand.
func (a *App) Dispatch(path string, args []string, mode render.Mode) (RunResult, error) {
	if _, ok := a.commands[path]; !ok {
		return RunResult{}, errors.Newf(errors.ErrInvalidSubcommand, "unknown command %q", path)
	}
	cmd, _, err := a.root.Find(strings.Split(path, "."))
	if err != nil {
		cmd = nil
	}
	return a.dispatchMode(path, cmd, args, mode), nil
}
