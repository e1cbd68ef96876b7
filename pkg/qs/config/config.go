package config

import (
	"fmt"

	"github.com/randalmurphal/quickscripts/pkg/qs/vars"
)

// Action is a named template declared in a config file.
type Action struct {
	// Name is the action name used on the command line.
	Name string

	// Template is the raw template string.
	Template string

	// Line is the 1-based line of the declaration, or 0 when the source
	// format does not track lines.
	Line int
}

// ActionFile is the parsed content of one config file.
type ActionFile struct {
	// Path is the file the actions were read from.
	Path string

	// Actions are the declared actions in file order, without duplicates.
	Actions []Action

	// Vars are the default variable values declared in the file.
	Vars *vars.Table

	// Warnings are non-fatal problems found while parsing.
	Warnings []string

	index map[string]int
}

func newActionFile(path string) *ActionFile {
	return &ActionFile{
		Path:  path,
		Vars:  vars.New(),
		index: make(map[string]int),
	}
}

// addAction appends a, keeping the first declaration of a duplicated name.
func (f *ActionFile) addAction(a Action) {
	if _, dup := f.index[a.Name]; dup {
		f.Warnings = append(f.Warnings, fmt.Sprintf("duplicate action name: %s (in %s)", a.Name, f.Path))
		return
	}
	f.index[a.Name] = len(f.Actions)
	f.Actions = append(f.Actions, a)
}

// Lookup returns the action with the given name.
func (f *ActionFile) Lookup(name string) (Action, bool) {
	i, ok := f.index[name]
	if !ok {
		return Action{}, false
	}
	return f.Actions[i], true
}

// Names returns the action names in file order.
func (f *ActionFile) Names() []string {
	names := make([]string, len(f.Actions))
	for i, a := range f.Actions {
		names[i] = a.Name
	}
	return names
}

// LineError is a problem with one line of a config file.
type LineError struct {
	// Path is the config file.
	Path string

	// Line is the 1-based line number, 0 if unknown.
	Line int

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("Error in %s: %s", e.Path, e.Message)
}
