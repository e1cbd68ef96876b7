package qs

import (
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/randalmurphal/quickscripts/pkg/qs/config"
	"github.com/randalmurphal/quickscripts/pkg/qs/history"
	"github.com/randalmurphal/quickscripts/pkg/qs/observability"
	"github.com/randalmurphal/quickscripts/pkg/qs/runner"
)

// Option configures an App.
type Option func(*App)

// WithFs sets the filesystem config files are read from.
// Default: the OS filesystem
func WithFs(fsys afero.Fs) Option {
	return func(a *App) {
		if fsys != nil {
			a.fs = fsys
		}
	}
}

// WithEnv sets the environment lookup used for XDG_CONFIG_HOME and HOME.
// Default: os.Getenv
func WithEnv(getenv func(string) string) Option {
	return func(a *App) {
		if getenv != nil {
			a.getenv = getenv
		}
	}
}

// WithWorkDir sets the directory qs runs from. It is used as is.
// Default: the process working directory with symlinks resolved
func WithWorkDir(dir string) Option {
	return func(a *App) {
		a.cwd = dir
	}
}

// WithIO sets the standard streams. Nil leaves a stream unchanged.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// WithSettings sets the user settings.
// Default: config.DefaultSettings()
func WithSettings(s config.Settings) Option {
	return func(a *App) {
		a.settings = s
	}
}

// WithLogger sets the logger for diagnostic output.
//
// Default: nil (no logging)
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithHistory records every run in store. A nil store disables history.
func WithHistory(store history.Store) Option {
	return func(a *App) {
		a.history = store
	}
}

// WithMetrics enables metrics collection.
//
// Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(a *App) {
		if m != nil {
			a.metrics = m
		}
	}
}

// WithSpans enables tracing.
//
// Default: observability.NoopSpanManager{}
func WithSpans(s observability.SpanManager) Option {
	return func(a *App) {
		if s != nil {
			a.spans = s
		}
	}
}

// WithRunnerOptions appends options to the runner built for each command.
// They are applied after the ones derived from settings and flags.
func WithRunnerOptions(opts ...runner.Option) Option {
	return func(a *App) {
		a.runnerOpts = append(a.runnerOpts, opts...)
	}
}
