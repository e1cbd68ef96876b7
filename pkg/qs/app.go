package qs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/randalmurphal/quickscripts/pkg/qs/catalog"
	"github.com/randalmurphal/quickscripts/pkg/qs/cli"
	"github.com/randalmurphal/quickscripts/pkg/qs/config"
	qserrors "github.com/randalmurphal/quickscripts/pkg/qs/errors"
	"github.com/randalmurphal/quickscripts/pkg/qs/history"
	"github.com/randalmurphal/quickscripts/pkg/qs/observability"
	"github.com/randalmurphal/quickscripts/pkg/qs/runner"
	"github.com/randalmurphal/quickscripts/pkg/qs/template"
	"github.com/randalmurphal/quickscripts/pkg/qs/vars"
)

// historyLimit is how many runs --history shows.
const historyLimit = 20

// Sentinel errors returned (already reported) by Run.
var (
	ErrNoArguments       = errors.New("no arguments given")
	ErrActionAndTemplate = errors.New("both an action name and a template given")
	ErrNothingToRun      = errors.New("neither an action name nor a template given")
	ErrActionNotFound    = errors.New("action not found")
	ErrInvalidConfig     = errors.New("invalid config file")
)

// App is the qs command.
//
// Create with New() and configure with Option functions. User-facing
// output (usage, diagnostics, "Would run") goes to stdout; config file
// errors go to stderr.
type App struct {
	fs         afero.Fs
	getenv     func(string) string
	cwd        string
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	settings   config.Settings
	logger     *slog.Logger
	history    history.Store
	metrics    observability.MetricsRecorder
	spans      observability.SpanManager
	runnerOpts []runner.Option
}

// New creates an App with the given options.
func New(opts ...Option) *App {
	a := &App{
		fs:       afero.NewOsFs(),
		getenv:   os.Getenv,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		settings: config.DefaultSettings(),
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run parses args (without the program name) and executes them.
//
// Every error returned has already been shown to the user unless
// qserrors.IsReported says otherwise; use qserrors.ExitCode to map it
// to an exit status.
func (a *App) Run(ctx context.Context, args []string) error {
	opts, err := cli.Parse(args)
	if err != nil {
		var uerr *cli.UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(a.stdout, uerr.Message)
			return qserrors.Reported(qserrors.User(err, "parse arguments"))
		}
		return err
	}
	return a.Execute(ctx, opts)
}

// Execute runs already parsed options.
func (a *App) Execute(ctx context.Context, opts *cli.Options) error {
	if opts.NoArgs {
		printUsage(a.stdout, "qs")
		return qserrors.Reported(qserrors.User(ErrNoArguments, ""))
	}
	if opts.ShowHelp {
		printHelp(a.stdout)
		return nil
	}
	if opts.ShowVersion {
		fmt.Fprintln(a.stdout, Version)
		return nil
	}

	cwd, err := a.workDir()
	if err != nil {
		fmt.Fprintln(a.stderr, "Error: Failed to resolve current directory")
		return qserrors.Reported(qserrors.Failure(err, "resolve working directory"))
	}
	explicit := a.explicitConfigs(opts.ConfigFiles, cwd)

	if opts.ShowHistory {
		return a.printHistory()
	}

	if opts.ListActions {
		paths := a.configPaths(explicit, cwd, opts.Verbose)
		a.printActions(paths)
		return nil
	}

	if opts.Action != "" && opts.HasTemplate {
		fmt.Fprintln(a.stdout, "Error: Must provide either an action name or a template string (--template), not both.")
		return qserrors.Reported(qserrors.User(ErrActionAndTemplate, ""))
	}
	if opts.Action == "" && !opts.HasTemplate {
		fmt.Fprint(a.stdout, "Error: Must provide either an action name or a --template\n\n")
		printUsage(a.stdout, "qs")
		return qserrors.Reported(qserrors.User(ErrNothingToRun, ""))
	}

	if opts.HasTemplate {
		if opts.Verbose {
			fmt.Fprintf(a.stdout, "Resolved template: %s\n", opts.Template)
		}
		return a.renderAndRun(ctx, opts, job{
			template: opts.Template,
			vars:     opts.Vars,
			cwd:      cwd,
			category: qserrors.CategoryUser,
		})
	}

	paths := a.configPaths(explicit, cwd, opts.Verbose)
	entry, err := a.resolve(ctx, opts.Action, paths)
	if err != nil {
		return err
	}

	if opts.Verbose {
		fmt.Fprintf(a.stdout, "Resolved template: %s\nFrom: %s\n", entry.Template, entry.Source)
		if entry.Vars.Len() > 0 {
			fmt.Fprintln(a.stdout, "with predefined variable values:")
			entry.Vars.Each(func(name, value string) bool {
				fmt.Fprintf(a.stdout, " - ${%s} => %s\n", name, value)
				return true
			})
		}
	}

	if opts.ActionHelp {
		usage, err := a.engine().Usage(entry.Template, opts.Action)
		if err != nil {
			a.printDiagnostic(err, opts.NoColor)
			fmt.Fprintf(a.stderr, "Invalid action template: %s\n", entry.Template)
			return qserrors.Reported(qserrors.Failure(err, "action usage"))
		}
		fmt.Fprint(a.stdout, usage)
		return nil
	}

	return a.renderAndRun(ctx, opts, job{
		action:   opts.Action,
		template: entry.Template,
		source:   entry.Source,
		dir:      filepath.Dir(entry.Source),
		vars:     vars.Merge(entry.Vars, opts.Vars),
		cwd:      cwd,
		category: qserrors.CategoryFailure,
	})
}

// job is one template to render and run.
type job struct {
	action   string
	template string
	source   string
	dir      string
	vars     *vars.Table
	cwd      string

	// category applies to template errors: a --template is the user's
	// mistake, a configured template is a broken config.
	category qserrors.Category
}

func (a *App) renderAndRun(ctx context.Context, opts *cli.Options, j job) error {
	renderCtx, span := a.spans.StartRenderSpan(ctx, j.action)
	start := time.Now()
	command, err := a.engine().Render(j.template, j.vars)
	elapsed := time.Since(start)
	a.metrics.RecordRender(renderCtx, j.action, elapsed, err)
	a.spans.EndSpanWithError(span, err)
	if err != nil {
		observability.LogRenderError(a.logger, j.action, err)
		a.printDiagnostic(err, opts.NoColor)
		if j.category == qserrors.CategoryFailure {
			fmt.Fprintf(a.stderr, "Invalid action template: %s\n", j.template)
		}
		return qserrors.Reported(qserrors.NewCategorized(err, j.category, "render template"))
	}
	observability.LogRender(a.logger, j.action, float64(elapsed.Microseconds())/1000, len(command))

	r := runner.New(append([]runner.Option{
		runner.WithShell(a.settings.Shell),
		runner.WithTimeout(a.settings.Timeout),
		runner.WithDryRun(opts.DryRun),
		runner.WithVerbose(opts.Verbose),
		runner.WithIO(a.stdin, a.stdout, a.stderr),
		runner.WithLogger(a.logger),
	}, a.runnerOpts...)...)

	runCtx, span := a.spans.StartRunSpan(ctx, j.action, opts.DryRun)
	res, err := r.Run(runCtx, runner.Request{Command: command, Dir: j.dir, Cwd: j.cwd})
	a.spans.EndSpanWithError(span, err)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return qserrors.Reported(err)
	}

	a.metrics.RecordCommand(ctx, j.action, opts.DryRun, res.ExitCode)
	observability.LogRun(a.logger, j.action, opts.DryRun, res.ExitCode, float64(res.Duration.Microseconds())/1000)
	a.record(history.Run{
		Action:   j.action,
		Source:   j.source,
		Template: j.template,
		Command:  res.Line,
		DryRun:   opts.DryRun,
		ExitCode: res.ExitCode,
		Duration: res.Duration,
	})

	if res.ExitCode != 0 {
		return &qserrors.ExitStatusError{Code: res.ExitCode}
	}
	return nil
}

// resolve finds the first config file declaring action. Files after the
// one that declares it are never read.
func (a *App) resolve(ctx context.Context, action string, paths []string) (catalog.Entry, error) {
	ctx, span := a.spans.StartResolveSpan(ctx, action)

	c := catalog.New()
	for _, path := range paths {
		f, err := a.load(path)
		if err != nil {
			a.spans.EndSpanWithError(span, err)
			return catalog.Entry{}, qserrors.Reported(qserrors.Failure(fmt.Errorf("%w: %w", ErrInvalidConfig, err), path))
		}
		c.AddFile(f)
		if entry, ok := c.Get(action); ok {
			a.spans.AddSpanEvent(ctx, "action.found")
			a.spans.EndSpanWithError(span, nil)
			observability.LogResolve(a.logger, action, entry.Source)
			return entry, nil
		}
	}

	fmt.Fprintf(a.stdout, "Could not find action with name: %s\n", action)
	err := qserrors.User(fmt.Errorf("%w: %s", ErrActionNotFound, action), "")
	a.spans.EndSpanWithError(span, err)
	return catalog.Entry{}, qserrors.Reported(err)
}

// load reads one config file, printing its errors to stderr and logging
// its warnings.
func (a *App) load(path string) (*config.ActionFile, error) {
	f, err := config.FromFile(a.fs, path)
	if err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintln(a.stderr, line)
		}
		return nil, err
	}
	for _, w := range f.Warnings {
		observability.LogConfigWarning(a.logger, path, w)
	}
	return f, nil
}

// printActions lists every action that can be resolved, with the file
// that declares it. Broken files are reported and skipped.
func (a *App) printActions(paths []string) {
	c := catalog.New()
	for _, path := range paths {
		f, err := a.load(path)
		if err != nil {
			continue
		}
		c.AddFile(f)
	}
	if c.Len() == 0 {
		return
	}

	fmt.Fprintln(a.stdout, "Available actions:")
	c.Range(func(e catalog.Entry) bool {
		fmt.Fprintf(a.stdout, " - %-35s (%s)\n", e.Name, e.Source)
		return true
	})
}

func (a *App) printHistory() error {
	if a.history == nil {
		fmt.Fprintf(a.stdout, "History is disabled. Set 'history' in %s to enable it.\n", config.SettingsPath(a.getenv))
		return nil
	}
	runs, err := a.history.List(historyLimit)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return qserrors.Reported(qserrors.Failure(err, "read history"))
	}
	for _, r := range runs {
		name := r.Action
		if name == "" {
			name = "--template"
		}
		mode := "ran"
		if r.DryRun {
			mode = "dry"
		}
		fmt.Fprintf(a.stdout, "%s  %-20s %s exit=%d  %s\n",
			r.Started.Local().Format(time.DateTime), name, mode, r.ExitCode, r.Command)
	}
	return nil
}

// record stores run in the history. Failures only warn.
func (a *App) record(run history.Run) {
	if a.history == nil {
		return
	}
	if _, err := a.history.Record(run); err != nil && a.logger != nil {
		a.logger.Warn("recording run history failed", slog.String("error", err.Error()))
	}
}

// explicitConfigs makes --config paths absolute and drops unreadable ones.
func (a *App) explicitConfigs(paths []string, cwd string) []string {
	var out []string
	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(cwd, abs)
		}
		if !config.IsReadable(a.fs, abs) {
			fmt.Fprintf(a.stdout, "Warning: could not read the config file '%s'. Ignoring.\n", p)
			continue
		}
		out = append(out, filepath.Clean(abs))
	}
	return out
}

// configPaths returns the config files to search, highest priority first:
// the --config files, then the discovered defaults.
func (a *App) configPaths(explicit []string, cwd string, verbose bool) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, p := range append(explicit, config.Discover(a.fs, a.getenv, cwd)...) {
		if seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}

	if verbose && len(paths) > 0 {
		fmt.Fprintln(a.stdout, "Searching the following configuration files:")
		for _, p := range paths {
			fmt.Fprintf(a.stdout, " - %s\n", p)
		}
	}
	return paths
}

func (a *App) workDir() (string, error) {
	if a.cwd != "" {
		return a.cwd, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(wd); err == nil {
		wd = resolved
	}
	return wd, nil
}

func (a *App) engine() *template.Engine {
	return template.NewEngine(
		template.WithMaxDepth(a.settings.MaxDepth),
		template.WithLogger(a.logger),
	)
}

// printDiagnostic prints a template error with a caret line under the
// offending span. Non-template errors are printed as is.
func (a *App) printDiagnostic(err error, noColor bool) {
	var terr *template.Error
	if !errors.As(err, &terr) {
		fmt.Fprintf(a.stdout, "Error: %v\n", err)
		return
	}

	caret := color.New(color.FgRed, color.Bold)
	if a.colorEnabled(noColor) {
		caret.EnableColor()
	} else {
		caret.DisableColor()
	}
	fmt.Fprintf(a.stdout, "Error: %s.\n%s\n%s\n", terr.Message, terr.SourceLine(), caret.Sprint(terr.Marker()))
}

func (a *App) colorEnabled(noColor bool) bool {
	if noColor {
		return false
	}
	switch a.settings.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return !color.NoColor && a.stdout == io.Writer(os.Stdout)
	}
}
