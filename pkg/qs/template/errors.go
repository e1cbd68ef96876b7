package template

import (
	"fmt"
	"strings"
)

// ErrorKind classifies template syntax errors.
type ErrorKind int

const (
	// UnterminatedEscape is a bare '$' not followed by '$' or '{'.
	UnterminatedEscape ErrorKind = iota + 1

	// MultipleNamesInBlock is a second identifier inside one ${...}.
	MultipleNamesInBlock

	// UnexpectedCharacterInBlock is a character that is not allowed inside ${...}.
	UnexpectedCharacterInBlock

	// EmptyConditionalName is a '?' with no identifier before it.
	EmptyConditionalName

	// UnterminatedBlock is end of input inside ${...}.
	UnterminatedBlock

	// DuplicateElse is a second ${else} at the same nesting depth.
	DuplicateElse

	// UnmatchedElseOrEnd is ${else} or ${end} with no enclosing ${name?}.
	UnmatchedElseOrEnd

	// MissingEnd is a conditional block that is never closed.
	MissingEnd

	// InvalidName is an identifier that is neither a name nor a single digit.
	InvalidName

	// NestingTooDeep is a conditional nested past the engine's depth limit.
	NestingTooDeep
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case UnterminatedEscape:
		return "unterminated_escape"
	case MultipleNamesInBlock:
		return "multiple_names_in_block"
	case UnexpectedCharacterInBlock:
		return "unexpected_character_in_block"
	case EmptyConditionalName:
		return "empty_conditional_name"
	case UnterminatedBlock:
		return "unterminated_block"
	case DuplicateElse:
		return "duplicate_else"
	case UnmatchedElseOrEnd:
		return "unmatched_else_or_end"
	case MissingEnd:
		return "missing_end"
	case InvalidName:
		return "invalid_name"
	case NestingTooDeep:
		return "nesting_too_deep"
	default:
		return "unknown"
	}
}

// Sentinel values for matching with errors.Is. Only the Kind is compared.
var (
	ErrUnterminatedEscape         = &Error{Kind: UnterminatedEscape}
	ErrMultipleNamesInBlock       = &Error{Kind: MultipleNamesInBlock}
	ErrUnexpectedCharacterInBlock = &Error{Kind: UnexpectedCharacterInBlock}
	ErrEmptyConditionalName       = &Error{Kind: EmptyConditionalName}
	ErrUnterminatedBlock          = &Error{Kind: UnterminatedBlock}
	ErrDuplicateElse              = &Error{Kind: DuplicateElse}
	ErrUnmatchedElseOrEnd         = &Error{Kind: UnmatchedElseOrEnd}
	ErrMissingEnd                 = &Error{Kind: MissingEnd}
	ErrInvalidName                = &Error{Kind: InvalidName}
	ErrNestingTooDeep             = &Error{Kind: NestingTooDeep}
)

// Error is a template syntax error.
//
// It carries the offending byte range and a copy of the template source so
// callers can render a diagnostic with Diagnostic.
type Error struct {
	// Kind classifies the error.
	Kind ErrorKind

	// Message is the human-readable description, without trailing period.
	Message string

	// Span is the offending byte range in Source.
	Span Span

	// Source is the template the error was found in.
	Source string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("template: %s at offset %d", e.Message, e.Span.Start)
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Diagnostic formats the error for display, pointing at the offending span:
//
//	Error: Unexpected ${end} block.
//	echo "${name}name${end}"
//	                   ^^^
//
// Only the source line containing the span is shown.
func (e *Error) Diagnostic() string {
	line, col, width := e.locate()

	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s.\n%s\n", e.Message, line)
	b.WriteString(strings.Repeat(" ", col))
	b.WriteString(strings.Repeat("^", width))
	return b.String()
}

// Marker returns the caret line of the diagnostic on its own, so callers
// can style it separately.
func (e *Error) Marker() string {
	_, col, width := e.locate()
	return strings.Repeat(" ", col) + strings.Repeat("^", width)
}

// SourceLine returns the source line containing the start of the span.
func (e *Error) SourceLine() string {
	line, _, _ := e.locate()
	return line
}

// locate finds the source line holding the span start, the span's column
// within that line, and the marker width (at least one, clipped to the line).
func (e *Error) locate() (line string, col, width int) {
	start := clamp(e.Span.Start, 0, len(e.Source))
	end := clamp(e.Span.End, start, len(e.Source))

	lineStart := strings.LastIndexByte(e.Source[:start], '\n') + 1
	lineEnd := len(e.Source)
	if i := strings.IndexByte(e.Source[start:], '\n'); i >= 0 {
		lineEnd = start + i
	}

	line = e.Source[lineStart:lineEnd]
	col = start - lineStart
	width = min(end, lineEnd) - start
	if width < 1 {
		width = 1
	}
	return line, col, width
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// newError builds an *Error for src.
func newError(kind ErrorKind, msg string, span Span, src string) *Error {
	return &Error{Kind: kind, Message: msg, Span: span, Source: src}
}

// endSpan is the span of the last byte of src, used for errors detected
// only once the input ran out.
func endSpan(src string) Span {
	if src == "" {
		return Span{}
	}
	return Span{Start: len(src) - 1, End: len(src)}
}
