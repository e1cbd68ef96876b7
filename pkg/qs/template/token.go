package template

import "fmt"

// Kind is the type of a Token.
type Kind int

const (
	// Literal is plain output text, with $$ already collapsed to $.
	Literal Kind = iota

	// VariableRef is a ${name} substitution.
	VariableRef

	// IfOpen opens a ${name?} conditional block.
	IfOpen

	// Else is ${else}.
	Else

	// End is ${end}.
	End
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case VariableRef:
		return "var"
	case IfOpen:
		return "if"
	case Else:
		return "else"
	case End:
		return "end"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Span is a byte range in a template source. End is exclusive.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Token is one lexical unit of a template.
type Token struct {
	// Kind is the token type.
	Kind Kind

	// Text is the output text for Literal tokens and the variable name
	// for VariableRef and IfOpen tokens.
	Text string

	// Span locates the token in the source. For names it covers the
	// identifier only, for literals the raw (unescaped) text.
	Span Span
}

// Raw returns the slice of src the token was scanned from.
func (t Token) Raw(src string) string {
	return src[t.Span.Start:t.Span.End]
}

// String implements fmt.Stringer for debugging.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.Span.Start, t.Span.End)
}
