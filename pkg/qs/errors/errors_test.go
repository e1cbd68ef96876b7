package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/randalmurphal/quickscripts/pkg/qs/config"
	"github.com/randalmurphal/quickscripts/pkg/qs/runner"
	"github.com/randalmurphal/quickscripts/pkg/qs/template"
)

func TestCategoryString(t *testing.T) {
	tests := []struct {
		category Category
		expected string
	}{
		{CategoryFailure, "failure"},
		{CategoryUser, "user"},
		{Category(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.category.String(); got != tt.expected {
				t.Errorf("Category(%d).String() = %s, want %s", tt.category, got, tt.expected)
			}
		})
	}
}

func TestCategorize(t *testing.T) {
	_, tmplErr := template.Render("${a?}", nil)
	syntaxErr := runner.Check("echo (")

	tests := []struct {
		name     string
		err      error
		expected Category
	}{
		{"nil error", nil, CategoryFailure},
		{"template error", tmplErr, CategoryUser},
		{"wrapped template error", fmt.Errorf("render: %w", tmplErr), CategoryUser},
		{"shell syntax error", syntaxErr, CategoryUser},
		{"config line error", &config.LineError{Path: "a", Message: "b"}, CategoryFailure},
		{"deadline", fmt.Errorf("run command: %w", context.DeadlineExceeded), CategoryFailure},
		{"explicit failure wins over template", Failure(tmplErr, "configured template"), CategoryFailure},
		{"explicit user", User(errors.New("unknown action"), ""), CategoryUser},
		{"unknown error", errors.New("unknown"), CategoryFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.err); got != tt.expected {
				t.Errorf("Categorize() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, 0},
		{"user", User(errors.New("x"), ""), 2},
		{"failure", Failure(errors.New("x"), ""), 1},
		{"plain error", errors.New("x"), 1},
		{"command status", &ExitStatusError{Code: 42}, 42},
		{"wrapped command status", fmt.Errorf("run: %w", &ExitStatusError{Code: 3}), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCategorizedError(t *testing.T) {
	t.Run("error message with context", func(t *testing.T) {
		err := Failure(errors.New("failed"), "load config")
		if got := err.Error(); got != "load config: failed" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("error message without context", func(t *testing.T) {
		err := User(errors.New("failed"), "")
		if got := err.Error(); got != "failed" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("unwrap", func(t *testing.T) {
		inner := errors.New("inner")
		if !errors.Is(User(inner, "ctx"), inner) {
			t.Error("expected errors.Is to find the wrapped error")
		}
	})
}

func TestReported(t *testing.T) {
	t.Run("keeps category of categorized errors", func(t *testing.T) {
		err := Reported(User(errors.New("bad"), "args"))
		if !IsReported(err) {
			t.Error("expected reported")
		}
		if err.Category != CategoryUser || err.Context != "args" {
			t.Errorf("got category %s context %q", err.Category, err.Context)
		}
	})

	t.Run("derives category of plain errors", func(t *testing.T) {
		_, tmplErr := template.Render("$", nil)
		err := Reported(tmplErr)
		if err.Category != CategoryUser {
			t.Errorf("got category %s", err.Category)
		}
		if ExitCode(err) != 2 {
			t.Errorf("got exit code %d", ExitCode(err))
		}
	})

	t.Run("unreported", func(t *testing.T) {
		if IsReported(Failure(errors.New("x"), "")) {
			t.Error("expected unreported")
		}
		if IsReported(errors.New("x")) {
			t.Error("expected unreported")
		}
	})

	t.Run("command status counts as reported", func(t *testing.T) {
		if !IsReported(&ExitStatusError{Code: 1}) {
			t.Error("expected reported")
		}
	})
}
