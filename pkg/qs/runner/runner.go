// Package runner executes rendered action commands with a shell.
//
// Each command is prefixed so that it runs in the directory of the config
// file that declared it, with QS_RUN_DIR set to the directory qs was
// invoked from:
//
//	cd <dir>; QS_RUN_DIR=<cwd>; <command>
//
// The command is checked with a bash parser before anything is executed.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"mvdan.cc/sh/v3/syntax"
)

// waitDelay bounds how long Run waits for the shell's output pipes to close
// after the shell itself was killed.
const waitDelay = 2 * time.Second

// ErrShellNotFound is returned when the configured shell cannot be started.
var ErrShellNotFound = errors.New("shell not found")

// SyntaxError reports a rendered command that is not valid shell.
type SyntaxError struct {
	Command string
	Err     error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid shell command %q: %v", e.Command, e.Err)
}

// Unwrap returns the parser error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Request describes one command to run.
type Request struct {
	// Command is the rendered template.
	Command string

	// Dir is the directory to cd into first. Empty means ".".
	Dir string

	// Cwd is exported as QS_RUN_DIR.
	Cwd string
}

// Result describes a finished (or skipped) command.
type Result struct {
	// Line is the full shell line including the cd prefix.
	Line string

	// Executed is false for dry runs.
	Executed bool

	// ExitCode is the exit status of the shell.
	ExitCode int

	// Duration is the wall time spent in the shell.
	Duration time.Duration
}

// Runner runs commands with a shell.
type Runner struct {
	shell   string
	dryRun  bool
	verbose bool
	timeout time.Duration
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	logger  *slog.Logger
}

// New creates a Runner. By default commands run with bash attached to
// the process's standard streams.
func New(opts ...Option) *Runner {
	r := &Runner{
		shell:  "bash",
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Line builds the shell line for req.
func Line(req Request) (string, error) {
	dir := req.Dir
	if dir == "" {
		dir = "."
	}
	qdir, err := syntax.Quote(dir, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("quote directory: %w", err)
	}
	qcwd, err := syntax.Quote(req.Cwd, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("quote working directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("cd ")
	b.WriteString(qdir)
	b.WriteString("; QS_RUN_DIR=")
	b.WriteString(qcwd)
	b.WriteString("; ")
	b.WriteString(req.Command)
	return b.String(), nil
}

// Check parses command as bash and returns a *SyntaxError if it is invalid.
func Check(command string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	if _, err := parser.Parse(strings.NewReader(command), ""); err != nil {
		return &SyntaxError{Command: command, Err: err}
	}
	return nil
}

// Run runs req. A dry run prints "Would run: <line>" and returns without
// executing. A non-zero exit status is reported in Result.ExitCode, not as
// an error.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	if err := Check(req.Command); err != nil {
		return Result{}, err
	}

	line, err := Line(req)
	if err != nil {
		return Result{}, err
	}
	res := Result{Line: line}

	if r.dryRun {
		fmt.Fprintf(r.stdout, "Would run: %s\n", line)
		return res, nil
	}
	if r.verbose {
		fmt.Fprintf(r.stdout, "Running: %s\n", line)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.shell, "-c", line)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err = cmd.Run()
	res.Duration = time.Since(start)
	res.Executed = true

	if r.logger != nil {
		r.logger.Debug("command finished",
			slog.String("shell", r.shell),
			slog.Duration("duration", res.Duration),
		)
	}

	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("run command: %w", ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return res, fmt.Errorf("%w: %s", ErrShellNotFound, r.shell)
	}
	return res, fmt.Errorf("run command: %w", err)
}
