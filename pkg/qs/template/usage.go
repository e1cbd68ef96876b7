package template

import (
	"strings"

	"github.com/randalmurphal/quickscripts/pkg/qs/vars"
)

// Usage returns the invocation synopsis for an action whose template is src:
//
//	Usage: <action> $0 $1 [--name <value>]
//
// Positional slots are listed in digit order, named variables once each
// in order of first appearance. The result ends with a newline. Nesting is
// not validated; only tokenization errors are reported.
func (e *Engine) Usage(src, action string) (string, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return "", err
	}

	var positional [vars.MaxPositional]bool
	var named []string
	seen := make(map[string]struct{})

	for _, tok := range tokens {
		if tok.Kind != VariableRef && tok.Kind != IfOpen {
			continue
		}
		if vars.IsPositional(tok.Text) {
			positional[tok.Text[0]-'0'] = true
			continue
		}
		if _, ok := seen[tok.Text]; ok {
			continue
		}
		seen[tok.Text] = struct{}{}
		named = append(named, tok.Text)
	}

	var b strings.Builder
	b.WriteString("Usage: ")
	b.WriteString(action)
	for i, ok := range positional {
		if ok {
			b.WriteString(" $")
			b.WriteString(vars.PositionalName(i))
		}
	}
	for _, name := range named {
		b.WriteString(" [--")
		b.WriteString(name)
		b.WriteString(" <value>]")
	}
	b.WriteByte('\n')
	return b.String(), nil
}
