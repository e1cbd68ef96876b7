// Package errors classifies qs failures and maps them to exit codes.
//
// Two categories exist:
//   - User: the invocation was wrong (unknown action, bad arguments, an
//     invalid --template). Exit code 2.
//   - Failure: something qs depends on is broken (unreadable or invalid
//     config files, an invalid configured template, the shell). Exit code 1.
//
// A command that ran and exited non-zero is reported with ExitStatusError,
// and qs exits with the same status.
package errors

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/quickscripts/pkg/qs/config"
	"github.com/randalmurphal/quickscripts/pkg/qs/runner"
	"github.com/randalmurphal/quickscripts/pkg/qs/template"
)

// Category represents who has to act on an error.
type Category int

const (
	// CategoryFailure indicates qs or its configuration is broken.
	CategoryFailure Category = iota + 1

	// CategoryUser indicates the invocation was wrong.
	CategoryUser
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryFailure:
		return "failure"
	case CategoryUser:
		return "user"
	default:
		return "unknown"
	}
}

// ExitCode returns the process exit code for the category.
func (c Category) ExitCode() int {
	if c == CategoryUser {
		return 2
	}
	return 1
}

// CategorizedError wraps an error with its category and context.
type CategorizedError struct {
	// Err is the underlying error.
	Err error

	// Category decides the exit code.
	Category Category

	// Context describes what operation was being attempted.
	Context string

	// Reported is set when the message was already shown to the user.
	Reported bool
}

// Error implements the error interface.
func (e *CategorizedError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %v", e.Context, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *CategorizedError) Unwrap() error {
	return e.Err
}

// NewCategorized creates a new categorized error.
func NewCategorized(err error, category Category, context string) *CategorizedError {
	return &CategorizedError{
		Err:      err,
		Category: category,
		Context:  context,
	}
}

// User creates a user error.
func User(err error, context string) *CategorizedError {
	return NewCategorized(err, CategoryUser, context)
}

// Failure creates a failure error.
func Failure(err error, context string) *CategorizedError {
	return NewCategorized(err, CategoryFailure, context)
}

// Reported marks err as already printed. The category is kept when err
// is categorized and derived with Categorize otherwise.
func Reported(err error) *CategorizedError {
	var catErr *CategorizedError
	if errors.As(err, &catErr) {
		return &CategorizedError{Err: catErr.Err, Category: catErr.Category, Context: catErr.Context, Reported: true}
	}
	return &CategorizedError{Err: err, Category: Categorize(err), Reported: true}
}

// ExitStatusError reports a command that exited with a non-zero status.
type ExitStatusError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.Code)
}

// Categorize determines the category of err.
func Categorize(err error) Category {
	if err == nil {
		return CategoryFailure // shouldn't happen, fail safe
	}

	var catErr *CategorizedError
	if errors.As(err, &catErr) {
		return catErr.Category
	}

	// A template typed on the command line.
	var tmplErr *template.Error
	if errors.As(err, &tmplErr) {
		return CategoryUser
	}

	var syntaxErr *runner.SyntaxError
	if errors.As(err, &syntaxErr) {
		return CategoryUser
	}

	var lineErr *config.LineError
	if errors.As(err, &lineErr) {
		return CategoryFailure
	}

	return CategoryFailure
}

// ExitCode returns the process exit code for err: 0 for nil, the command's
// status for ExitStatusError, and the category's code otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var statusErr *ExitStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return Categorize(err).ExitCode()
}

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var catErr *CategorizedError
	if errors.As(err, &catErr) {
		return catErr.Reported
	}
	var statusErr *ExitStatusError
	return errors.As(err, &statusErr)
}
