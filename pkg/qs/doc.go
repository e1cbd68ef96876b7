/*
Package qs implements the qs command: named shell command templates
("actions") resolved from config files and run with a shell.

# Quick Start

	app := qs.New()
	err := app.Run(ctx, os.Args[1:])
	os.Exit(qserrors.ExitCode(err))

Run parses the command line, finds the action in the first config file
that declares it, renders its template with the given variables and runs
the result:

	qs search cats                  # action with a positional argument
	qs greet --name Ann             # named variable
	qs --template 'echo ${0}' hi    # ad hoc template
	qs --actions                    # list resolvable actions

# Config Resolution

Config files are searched highest priority first: each --config (the last
one given wins), ./.qs.cfg, the git source root's .qs.cfg, then
$XDG_CONFIG_HOME/qs/default.cfg. See package config for the formats.

# Testing

Every external dependency can be replaced with an Option:

	app := qs.New(
	    qs.WithFs(afero.NewMemMapFs()),
	    qs.WithWorkDir("/work"),
	    qs.WithEnv(func(string) string { return "" }),
	    qs.WithIO(stdin, &stdout, &stderr),
	)

# Errors

Errors returned by Run have already been printed. Use qserrors.ExitCode to
turn them into an exit status: 2 for usage and template errors, 1 for
broken config files and internal failures, or the command's own status.
*/
package qs
