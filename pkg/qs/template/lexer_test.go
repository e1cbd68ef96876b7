package template_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/randalmurphal/quickscripts/pkg/qs/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTokenize tests token kinds, text and spans for valid templates.
func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []template.Token
	}{
		{
			name:     "plain text",
			input:    "hello",
			expected: []template.Token{{Kind: template.Literal, Text: "hello", Span: template.Span{Start: 0, End: 5}}},
		},
		{
			name:     "escaped dollar",
			input:    "a $$ b",
			expected: []template.Token{{Kind: template.Literal, Text: "a $ b", Span: template.Span{Start: 0, End: 6}}},
		},
		{
			name:  "variable between text",
			input: "x${name}y",
			expected: []template.Token{
				{Kind: template.Literal, Text: "x", Span: template.Span{Start: 0, End: 1}},
				{Kind: template.VariableRef, Text: "name", Span: template.Span{Start: 3, End: 7}},
				{Kind: template.Literal, Text: "y", Span: template.Span{Start: 8, End: 9}},
			},
		},
		{
			name:  "spaces inside braces",
			input: "${ name }",
			expected: []template.Token{
				{Kind: template.VariableRef, Text: "name", Span: template.Span{Start: 3, End: 7}},
			},
		},
		{
			name:  "conditional with else",
			input: "${name?}a${else}b${end}",
			expected: []template.Token{
				{Kind: template.IfOpen, Text: "name", Span: template.Span{Start: 2, End: 6}},
				{Kind: template.Literal, Text: "a", Span: template.Span{Start: 8, End: 9}},
				{Kind: template.Else, Text: "else", Span: template.Span{Start: 11, End: 15}},
				{Kind: template.Literal, Text: "b", Span: template.Span{Start: 16, End: 17}},
				{Kind: template.End, Text: "end", Span: template.Span{Start: 19, End: 22}},
			},
		},
		{
			name:  "space after question mark",
			input: "${name?   }",
			expected: []template.Token{
				{Kind: template.IfOpen, Text: "name", Span: template.Span{Start: 2, End: 6}},
			},
		},
		{
			name:  "positional",
			input: "${0}",
			expected: []template.Token{
				{Kind: template.VariableRef, Text: "0", Span: template.Span{Start: 2, End: 3}},
			},
		},
		{
			name:     "bare braces are literal",
			input:    "{}",
			expected: []template.Token{{Kind: template.Literal, Text: "{}", Span: template.Span{Start: 0, End: 2}}},
		},
		{
			name:     "escaped block opener",
			input:    "$${x}",
			expected: []template.Token{{Kind: template.Literal, Text: "${x}", Span: template.Span{Start: 0, End: 5}}},
		},
		{
			name:     "empty block",
			input:    "${}",
			expected: nil,
		},
		{
			name:  "hyphen and underscore names",
			input: "${my-var_1}",
			expected: []template.Token{
				{Kind: template.VariableRef, Text: "my-var_1", Span: template.Span{Start: 2, End: 10}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := template.Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestTokenize_Empty(t *testing.T) {
	tokens, err := template.Tokenize("")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

// TestTokenize_Errors tests that malformed templates fail with the right kind and span.
func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    template.ErrorKind
		message string
		span    template.Span
	}{
		{
			name:    "bare dollar",
			input:   `echo "$MYENV"`,
			kind:    template.UnterminatedEscape,
			message: "Unexpected character (use $$ to output a literal $)",
			span:    template.Span{Start: 7, End: 8},
		},
		{
			name:    "trailing dollar",
			input:   "abc$",
			kind:    template.UnterminatedEscape,
			message: "Unexpected character (use $$ to output a literal $)",
			span:    template.Span{Start: 3, End: 4},
		},
		{
			name:    "two names in block",
			input:   `echo "Invalid: ${ invalid block }"`,
			kind:    template.MultipleNamesInBlock,
			message: "Only a single variable allowed per block",
			span:    template.Span{Start: 26, End: 27},
		},
		{
			name:    "name after question mark",
			input:   "${a?b}",
			kind:    template.MultipleNamesInBlock,
			message: "Only a single variable allowed per block",
			span:    template.Span{Start: 4, End: 5},
		},
		{
			name:    "garbage in block",
			input:   `echo "${@&@!^(%!}`,
			kind:    template.UnexpectedCharacterInBlock,
			message: "Unexpected character",
			span:    template.Span{Start: 8, End: 9},
		},
		{
			name:    "empty conditional name",
			input:   `echo "${  ?  }"`,
			kind:    template.EmptyConditionalName,
			message: "Missing variable",
			span:    template.Span{Start: 10, End: 11},
		},
		{
			name:    "unfinished conditional block",
			input:   "${var?",
			kind:    template.UnterminatedBlock,
			message: "Unfinished variable block",
			span:    template.Span{Start: 5, End: 6},
		},
		{
			name:    "unfinished block",
			input:   "echo ${var",
			kind:    template.UnterminatedBlock,
			message: "Unfinished variable block",
			span:    template.Span{Start: 9, End: 10},
		},
		{
			name:    "invalid name",
			input:   "${1a}",
			kind:    template.InvalidName,
			message: "Invalid variable name '1a'",
			span:    template.Span{Start: 2, End: 4},
		},
		{
			name:    "two digit positional",
			input:   "${10}",
			kind:    template.InvalidName,
			message: "Invalid variable name '10'",
			span:    template.Span{Start: 2, End: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := template.Tokenize(tt.input)
			require.Error(t, err)
			assert.Nil(t, tokens)

			var terr *template.Error
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, tt.kind, terr.Kind)
			assert.Equal(t, tt.message, terr.Message)
			assert.Equal(t, tt.span, terr.Span)
			assert.Equal(t, tt.input, terr.Source)
		})
	}
}

// TestTokenize_RoundTrip tests that literal tokens reproduce their source text.
func TestTokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		"plain text",
		"echo {not a block} }{",
		"unicode: héllo wörld ✓",
		"cost: $$5 and $$$${HOME}",
		"",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tokens, err := template.Tokenize(input)
			require.NoError(t, err)

			var raw, escaped strings.Builder
			for _, tok := range tokens {
				require.Equal(t, template.Literal, tok.Kind)
				raw.WriteString(tok.Raw(input))
				escaped.WriteString(template.Escape(tok.Text))
			}
			assert.Equal(t, input, raw.String())
			assert.Equal(t, input, escaped.String())
		})
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "$$PATH", template.Escape("$PATH"))
	assert.Equal(t, "no dollars", template.Escape("no dollars"))

	out, err := template.Render(template.Escape("${weird} $$ $"), nil)
	require.NoError(t, err)
	assert.Equal(t, "${weird} $$ $", out)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "literal", template.Literal.String())
	assert.Equal(t, "var", template.VariableRef.String())
	assert.Equal(t, "if", template.IfOpen.String())
	assert.Equal(t, "else", template.Else.String())
	assert.Equal(t, "end", template.End.String())
	assert.Equal(t, "kind(42)", template.Kind(42).String())
}
