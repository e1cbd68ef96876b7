package template

import (
	"log/slog"
	"strings"

	"github.com/randalmurphal/quickscripts/pkg/qs/vars"
)

// Engine parses and renders templates.
//
// Create with NewEngine() and configure with Option functions.
// Engine holds no per-render state and is safe for concurrent use.
type Engine struct {
	maxDepth int
	logger   *slog.Logger
}

// NewEngine creates a new Engine with the given options.
//
// Default configuration:
//   - MaxDepth: DefaultMaxDepth
//   - Logger: none
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse tokenizes src and builds its conditional tree.
func (e *Engine) Parse(src string) (*Tree, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, tokens: tokens, maxDepth: e.maxDepth}
	nodes, err := p.parse()
	if err != nil {
		return nil, err
	}
	return &Tree{Source: src, Nodes: nodes}, nil
}

// Render returns src with its variables substituted from t.
//
// Missing and empty variables render as nothing. The table is snapshotted
// on entry, so changes made to it while rendering are not observed. On
// error the result is empty and err is an *Error.
//
// Example:
//
//	eng := NewEngine()
//	out, err := eng.Render("${name?}Hello ${name}${else}Hi!${end}", vars.FromPairs("name", "X"))
//	// out: "Hello X"
func (e *Engine) Render(src string, t *vars.Table) (string, error) {
	tree, err := e.Parse(src)
	if err != nil {
		if e.logger != nil {
			e.logger.Debug("template parse failed", slog.String("error", err.Error()))
		}
		return "", err
	}

	snap := t.Snapshot()
	var b strings.Builder
	b.Grow(len(src))
	renderNodes(&b, tree.Nodes, snap)

	if e.logger != nil {
		e.logger.Debug("template rendered",
			slog.Int("source_bytes", len(src)),
			slog.Int("output_bytes", b.Len()),
			slog.Int("vars", snap.Len()),
		)
	}
	return b.String(), nil
}

// renderNodes writes nodes to b. Conditions are evaluated against the
// snapshot once, when their block is entered.
func renderNodes(b *strings.Builder, nodes []Node, snap vars.Snapshot) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *TextNode:
			b.WriteString(n.Text)
		case *RefNode:
			if v, ok := snap.Truthy(n.Name); ok {
				b.WriteString(v)
			}
		case *IfNode:
			if _, ok := snap.Truthy(n.Cond); ok {
				renderNodes(b, n.Then, snap)
			} else {
				renderNodes(b, n.Else, snap)
			}
		}
	}
}

// defaultEngine is the package-level engine with default settings.
var defaultEngine = NewEngine()

// Parse parses src using the default engine.
func Parse(src string) (*Tree, error) {
	return defaultEngine.Parse(src)
}

// Render renders src against t using the default engine.
//
// Example:
//
//	out, err := template.Render("hello ${name}", vars.FromPairs("name", "World"))
//	// out: "hello World"
func Render(src string, t *vars.Table) (string, error) {
	return defaultEngine.Render(src, t)
}

// Usage describes how to invoke action using the default engine.
func Usage(src, action string) (string, error) {
	return defaultEngine.Usage(src, action)
}
