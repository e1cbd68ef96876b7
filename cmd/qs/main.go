// Command qs runs named shell command templates from config files.
//
//	qs search cats
//	qs --template 'echo ${0}' hello
//
// Internal logs go to stderr: debug with --verbose, warnings otherwise.
// QS_LOG_LEVEL (debug, info, warn, error) overrides the level.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/spf13/afero"

	"github.com/randalmurphal/quickscripts/pkg/qs"
	"github.com/randalmurphal/quickscripts/pkg/qs/config"
	qserrors "github.com/randalmurphal/quickscripts/pkg/qs/errors"
	"github.com/randalmurphal/quickscripts/pkg/qs/history"
	"github.com/randalmurphal/quickscripts/pkg/qs/observability"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args[1:]
	logger := newLogger(os.Getenv("QS_LOG_LEVEL"), slices.Contains(args, "--verbose"))

	settingsPath := config.SettingsPath(os.Getenv)
	settings, err := config.LoadSettings(afero.NewOsFs(), settingsPath)
	if err != nil {
		logger.Warn("ignoring settings file", slog.String("path", settingsPath), slog.String("error", err.Error()))
		settings = config.DefaultSettings()
	}

	opts := []qs.Option{
		qs.WithSettings(settings),
		qs.WithLogger(logger),
		qs.WithMetrics(observability.NewMetricsRecorder()),
		qs.WithSpans(observability.NewSpanManager()),
	}

	if settings.HistoryPath != "" {
		store, err := openHistory(settings.HistoryPath)
		if err != nil {
			logger.Warn("history disabled", slog.String("path", settings.HistoryPath), slog.String("error", err.Error()))
		} else {
			defer store.Close()
			opts = append(opts, qs.WithHistory(store))
		}
	}

	err = qs.New(opts...).Run(ctx, args)
	if err != nil && !qserrors.IsReported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return qserrors.ExitCode(err)
}

func openHistory(path string) (*history.SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	return history.NewSQLiteStore(path)
}

func newLogger(level string, verbose bool) *slog.Logger {
	lvl := slog.LevelWarn
	if verbose {
		lvl = slog.LevelDebug
	}
	if level != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(level)); err == nil {
			lvl = parsed
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
