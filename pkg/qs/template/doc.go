/*
Package template implements the qs action template language.

# Overview

A template is a command line with placeholders. Rendering substitutes
variables from a vars.Table and evaluates conditional sections:

	out, err := template.Render(`echo "Hello ${name}!"`, vars.FromPairs("name", "World"))
	// out: echo "Hello World!"

# Syntax

	$$                 a literal $
	${name}            value of name, nothing if missing or empty
	${ name }          same; spaces inside the braces are ignored
	${0} .. ${9}       positional arguments
	${name?}A${end}    A if name is set and non-empty
	${name?}A${else}B${end}
	                   A if name is set and non-empty, otherwise B

Conditionals nest freely. Any other use of '$' is a syntax error, as is
any character inside ${...} that is not part of a single identifier.
Missing variables are never an error: they render as empty text, which is
what makes optional arguments work.

# Errors

Syntax errors are returned as *Error values carrying the offending byte
span. Diagnostic formats them with a caret marker:

	Error: Unexpected ${end} block.
	echo "${name}name${end}"
	                   ^^^

Use errors.Is with the Err* sentinels to test for a particular kind.

# Usage Synopsis

Usage derives a help line from the placeholders a template references:

	u, _ := template.Usage("something ${0} and then ${name}, finally ${1}", "foobar")
	// u: "Usage: foobar $0 $1 [--name <value>]\n"

# Thread Safety

Engine is safe for concurrent use after construction. Every call builds
its own token sequence; nothing is cached between calls.
*/
package template
