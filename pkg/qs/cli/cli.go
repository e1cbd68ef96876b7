// Package cli parses the qs command line.
//
// qs flags may appear anywhere on the command line. The first bare word
// is the action name; every later bare word is a positional argument and
// every other "--name value" pair is a named template variable:
//
//	qs --dry-run search cats --engine duck
//
// Parse splits qs flags from action arguments and hands the former to a
// pflag.FlagSet.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/randalmurphal/quickscripts/pkg/qs/vars"
)

// Options is the parsed command line.
type Options struct {
	// Action is the action name, empty when none was given.
	Action string

	// Template is the --template value. HasTemplate distinguishes an empty
	// template from none.
	Template    string
	HasTemplate bool

	// ConfigFiles are the --config paths, highest priority first (the last
	// one given on the command line comes first).
	ConfigFiles []string

	DryRun  bool
	Verbose bool
	NoColor bool

	// ShowHelp is --help before the action name; ActionHelp is --help after it.
	ShowHelp   bool
	ActionHelp bool

	ShowVersion bool
	ListActions bool
	ShowHistory bool

	// NoArgs is set when qs was run without any argument.
	NoArgs bool

	// Vars holds named variables and the positional slots "0".."9".
	Vars *vars.Table
}

// UsageError is an invalid command line. Message is shown to the user as is.
type UsageError struct {
	Message string
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return e.Message
}

func usageErrorf(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// flagSpec describes a qs flag for the pre-split.
type flagSpec struct {
	takesValue bool
	missing    string // message when the value is missing
}

var qsFlags = map[string]flagSpec{
	"--dry-run":  {},
	"--verbose":  {},
	"--no-color": {},
	"--actions":  {},
	"--history":  {},
	"--version":  {},
	"--help":     {},
	"--config":   {takesValue: true, missing: "Argument --config should be followed by a file path."},
	"--template": {takesValue: true, missing: "--template should be followed by a template string."},
}

// Parse parses args, which exclude the program name.
func Parse(args []string) (*Options, error) {
	opts := &Options{Vars: vars.New()}
	if len(args) == 0 {
		opts.NoArgs = true
		return opts, nil
	}

	flagArgs, err := split(args, opts)
	if err != nil {
		return nil, err
	}

	fs := newFlagSet(opts)
	var configs []string
	fs.StringArrayVar(&configs, "config", nil, "")
	if err := fs.Parse(flagArgs); err != nil {
		return nil, usageErrorf("%v", err)
	}

	opts.HasTemplate = fs.Changed("template")
	for i := len(configs) - 1; i >= 0; i-- {
		opts.ConfigFiles = append(opts.ConfigFiles, configs[i])
	}
	return opts, nil
}

// newFlagSet binds the qs flags to opts.
func newFlagSet(opts *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("qs", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Print the command that would have run, don't actually run it.")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Print more information while executing.")
	fs.BoolVar(&opts.NoColor, "no-color", false, "Disable colored diagnostics.")
	fs.BoolVar(&opts.ListActions, "actions", false, "List all available actions and exit.")
	fs.BoolVar(&opts.ShowHistory, "history", false, "List recently run commands and exit.")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Print the current version and exit.")
	fs.BoolVar(&opts.ShowHelp, "help", false, "Show this help and exit.")
	fs.StringVar(&opts.Template, "template", "", "Use an explicit template instead of an action.")
	return fs
}

// split walks args, filling the action name and variables into opts and
// returning the qs flags for pflag. --help before the action name and
// --version end the walk.
func split(args []string, opts *Options) ([]string, error) {
	var flagArgs []string
	positional := 0

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if !strings.HasPrefix(arg, "--") {
			if opts.Action == "" {
				if !vars.ValidName(arg) {
					return nil, usageErrorf("'%s' is not a valid action name. Action names must start with a letter, followed by letters, numbers, a dash (-) or an underscore (_)", arg)
				}
				opts.Action = arg
				continue
			}
			if positional >= vars.MaxPositional {
				return nil, usageErrorf("At most %d positional arguments can be given. Wrap arguments containing spaces in double quotes (\").", vars.MaxPositional)
			}
			opts.Vars.Set(vars.PositionalName(positional), arg)
			positional++
			continue
		}

		spec, known := qsFlags[arg]
		switch {
		case arg == "--help" && opts.Action != "":
			// Action help; keep going to collect --config files.
			opts.ActionHelp = true
		case arg == "--help" || arg == "--version":
			return append(flagArgs, arg), nil
		case known && spec.takesValue:
			if i+1 >= len(args) {
				return nil, &UsageError{Message: spec.missing}
			}
			i++
			flagArgs = append(flagArgs, arg+"="+args[i])
		case known:
			flagArgs = append(flagArgs, arg)
		default:
			name := arg[2:]
			if !vars.ValidName(name) {
				return nil, usageErrorf("Variable name '%s' is not a valid name. Variables must start with a letter, and consist only of letters, numbers and '-' and '_' (e.g. --some-variable_1, --NAME1).", name)
			}
			if i+1 >= len(args) {
				return nil, usageErrorf("Missing value for variable '%s'", name)
			}
			i++
			opts.Vars.Set(name, args[i])
		}
	}
	return flagArgs, nil
}
