package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/randalmurphal/quickscripts/pkg/qs/vars"
)

// ParseCfg parses the line-oriented .qs.cfg format:
//
//	# comment
//	engine := google
//	search = xdg-open https://www.${engine}.com/${0?}?q=${0}${end}
//
// "name = template" declares an action, "name := value" a default variable.
// Leading whitespace is ignored; the value is the rest of the line after
// the operator and any following whitespace.
//
// Every malformed line is reported; the returned error joins one
// *LineError per bad line and no file is returned.
func ParseCfg(path string, data []byte) (*ActionFile, error) {
	f := newActionFile(path)

	var errs []error
	for i, line := range strings.Split(string(data), "\n") {
		if err := f.parseLine(i+1, strings.TrimSuffix(line, "\r")); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return f, nil
}

// parseLine parses a single line of a .qs.cfg file.
func (f *ActionFile) parseLine(lineno int, line string) error {
	fail := func(msg string) error {
		return &LineError{Path: f.Path, Line: lineno, Message: msg}
	}

	rest := strings.TrimLeft(line, " \t")
	if rest == "" || rest[0] == '#' {
		return nil
	}

	n := 0
	for n < len(rest) && vars.IsIdentChar(rest[n]) {
		n++
	}
	if n == 0 {
		return fail(fmt.Sprintf("Unexpected character '%c' (%d)", rest[0], rest[0]))
	}
	name := rest[:n]
	rest = strings.TrimLeft(rest[n:], " \t")

	var isVar bool
	switch {
	case strings.HasPrefix(rest, ":="):
		isVar = true
		rest = rest[2:]
	case strings.HasPrefix(rest, "="):
		rest = rest[1:]
	default:
		return fail("Expected '=' or ':='")
	}
	value := strings.TrimLeft(rest, " \t")

	switch {
	case strings.HasPrefix(value, "#") && isVar:
		return fail("Argument value cannot start with '#'")
	case strings.HasPrefix(value, "#"):
		return fail("Action template cannot start with '#'")
	case value == "" && isVar:
		return fail("No value after ':='")
	case value == "":
		return fail("No value after '='")
	}

	if isVar {
		f.Vars.Set(name, value)
	} else {
		f.addAction(Action{Name: name, Template: value, Line: lineno})
	}
	return nil
}
