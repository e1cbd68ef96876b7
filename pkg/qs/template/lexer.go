package template

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/quickscripts/pkg/qs/vars"
)

// Keywords recognized as the whole content of a ${...} block.
const (
	keywordElse = "else"
	keywordEnd  = "end"
)

type lexMode int

const (
	modeLiteral lexMode = iota
	modeBlock
)

// lexer scans a template left to right in a single pass.
type lexer struct {
	src    string
	tokens []Token

	mode lexMode

	// escape is set after a bare '$'; the next byte must be '$' or '{'.
	escape bool

	// named is set once the current block has produced its identifier.
	named bool

	// skipSpace consumes spaces before the next byte is examined.
	skipSpace bool

	// nameStart is the offset of the identifier being scanned, or -1.
	nameStart int

	lit      strings.Builder
	litStart int
}

// Tokenize scans src into a flat token sequence.
//
// The sequence is freshly allocated for every call. On error no tokens are
// returned and the error is an *Error describing the offending span.
func Tokenize(src string) ([]Token, error) {
	l := &lexer{src: src, nameStart: -1}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) run() error {
	src := l.src
	for i := 0; i < len(src); i++ {
		if l.skipSpace {
			l.skipSpace = false
			for i < len(src) && src[i] == ' ' {
				i++
			}
			if i == len(src) {
				break
			}
		}

		var err error
		switch l.mode {
		case modeLiteral:
			err = l.literal(i)
		case modeBlock:
			err = l.block(i)
		}
		if err != nil {
			return err
		}
	}

	switch {
	case l.mode == modeBlock:
		return newError(UnterminatedBlock, "Unfinished variable block", endSpan(src), src)
	case l.escape:
		return newError(UnterminatedEscape, "Unexpected character (use $$ to output a literal $)", endSpan(src), src)
	}
	l.flushLiteral(len(src))
	return nil
}

// literal handles byte i in literal mode.
func (l *lexer) literal(i int) error {
	c := l.src[i]
	switch {
	case c == '$':
		if l.escape {
			l.lit.WriteByte('$')
		}
		l.escape = !l.escape
	case c == '{' && l.escape:
		l.escape = false
		l.flushLiteral(i - 1)
		l.mode = modeBlock
		l.skipSpace = true
	case l.escape:
		return newError(UnterminatedEscape, "Unexpected character (use $$ to output a literal $)", Span{i, i + 1}, l.src)
	default:
		l.lit.WriteByte(c)
	}
	return nil
}

// block handles byte i inside ${...}.
func (l *lexer) block(i int) error {
	c := l.src[i]
	switch {
	case c == '}':
		if l.nameStart >= 0 {
			if err := l.emitName(i, true, VariableRef); err != nil {
				return err
			}
		}
		l.named = false
		l.mode = modeLiteral
		l.litStart = i + 1
	case vars.IsIdentChar(c):
		if l.named {
			return newError(MultipleNamesInBlock, "Only a single variable allowed per block", Span{i, i + 1}, l.src)
		}
		if l.nameStart < 0 {
			l.nameStart = i
		}
	case c == '?':
		if l.nameStart < 0 {
			return newError(EmptyConditionalName, "Missing variable", Span{i, i + 1}, l.src)
		}
		if err := l.emitName(i, false, IfOpen); err != nil {
			return err
		}
		l.named = true
		l.skipSpace = true
	case c == ' ':
		if l.nameStart >= 0 {
			if err := l.emitName(i, true, VariableRef); err != nil {
				return err
			}
		}
		l.named = true
		l.skipSpace = true
	default:
		return newError(UnexpectedCharacterInBlock, "Unexpected character", Span{i, i + 1}, l.src)
	}
	return nil
}

// emitName closes the identifier ending at end. Keywords are recognized
// for names closed by '}' or a space, never for a conditional's name.
func (l *lexer) emitName(end int, keyword bool, kind Kind) error {
	span := Span{l.nameStart, end}
	name := l.src[span.Start:span.End]
	l.nameStart = -1

	if keyword {
		switch name {
		case keywordElse:
			l.tokens = append(l.tokens, Token{Kind: Else, Text: name, Span: span})
			return nil
		case keywordEnd:
			l.tokens = append(l.tokens, Token{Kind: End, Text: name, Span: span})
			return nil
		}
	}

	if !vars.ValidName(name) && !vars.IsPositional(name) {
		return newError(InvalidName, fmt.Sprintf("Invalid variable name '%s'", name), span, l.src)
	}
	l.tokens = append(l.tokens, Token{Kind: kind, Text: name, Span: span})
	return nil
}

// flushLiteral emits the pending literal text, if any, ending at end.
func (l *lexer) flushLiteral(end int) {
	if l.lit.Len() == 0 {
		return
	}
	l.tokens = append(l.tokens, Token{
		Kind: Literal,
		Text: l.lit.String(),
		Span: Span{l.litStart, end},
	})
	l.lit.Reset()
}

// Escape returns s with every '$' doubled so that it renders verbatim.
func Escape(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
