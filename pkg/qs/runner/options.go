package runner

import (
	"io"
	"log/slog"
	"time"
)

// Option configures a Runner.
type Option func(*Runner)

// WithShell sets the interpreter invoked as "<shell> -c <line>".
// Default: bash
func WithShell(shell string) Option {
	return func(r *Runner) {
		if shell != "" {
			r.shell = shell
		}
	}
}

// WithDryRun prints the line instead of running it.
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) {
		r.dryRun = dryRun
	}
}

// WithVerbose prints "Running: <line>" before running.
func WithVerbose(verbose bool) Option {
	return func(r *Runner) {
		r.verbose = verbose
	}
}

// WithTimeout kills the shell after d. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// WithIO sets the streams attached to the shell. Nil leaves a stream
// unchanged. The "Would run" and "Running" lines go to stdout.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		if stdin != nil {
			r.stdin = stdin
		}
		if stdout != nil {
			r.stdout = stdout
		}
		if stderr != nil {
			r.stderr = stderr
		}
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}
