// Package history records the commands qs ran (or would have run).
package history

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Store persists run records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Record stores a run and returns it with ID and Started filled in
	// when they were empty.
	Record(run Run) (Run, error)

	// Get retrieves a run by ID.
	// Returns ErrNotFound if the run doesn't exist.
	Get(id string) (Run, error)

	// List returns up to limit runs, most recent first.
	// A limit of zero or less returns every run.
	List(limit int) ([]Run, error)

	// ListAction is List restricted to one action name.
	ListAction(action string, limit int) ([]Run, error)

	// Clear removes every run.
	Clear() error

	// Close releases any resources (connections, files).
	Close() error
}

// Run is one invocation of an action or an explicit template.
type Run struct {
	ID string

	// Action is the action name, empty for --template runs.
	Action string

	// Source is the config file that declared the action.
	Source string

	// Template is the unrendered template.
	Template string

	// Command is the full shell line.
	Command string

	DryRun   bool
	ExitCode int
	Started  time.Time
	Duration time.Duration
}

// Sentinel errors for history operations.
var (
	// ErrNotFound indicates a run doesn't exist.
	ErrNotFound = errors.New("run not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("history store closed")
)

// prepare fills in the generated fields of run.
func prepare(run Run) Run {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Started.IsZero() {
		run.Started = time.Now()
	}
	run.Started = run.Started.UTC()
	return run
}
