package template

import "fmt"

// Node is an element of a parsed template.
type Node interface {
	node()
}

// TextNode is literal output text.
type TextNode struct {
	Text string
}

// RefNode substitutes the value of a variable.
type RefNode struct {
	Name string
	Span Span
}

// IfNode is a ${name?}...${else}...${end} conditional.
// Else is nil when the block has no ${else}.
type IfNode struct {
	Cond string
	Span Span
	Then []Node
	Else []Node
}

func (*TextNode) node() {}
func (*RefNode) node()  {}
func (*IfNode) node()   {}

// Tree is a parsed template.
type Tree struct {
	Source string
	Nodes  []Node
}

// parser builds a Tree from a token sequence by recursive descent.
type parser struct {
	src      string
	tokens   []Token
	pos      int
	maxDepth int
}

// stop describes the token that ended a node list.
type stop struct {
	kind Kind
	tok  Token
	eof  bool
}

// parse consumes all tokens and returns the top-level node list.
func (p *parser) parse() ([]Node, error) {
	nodes, st, err := p.list(0)
	if err != nil {
		return nil, err
	}
	if !st.eof {
		return nil, newError(UnmatchedElseOrEnd,
			fmt.Sprintf("Unexpected ${%s} block", st.tok.Text), st.tok.Span, p.src)
	}
	return nodes, nil
}

// list parses nodes until ${else}, ${end} or the end of input and reports
// which one stopped it. The caller decides whether that is legal at its depth.
func (p *parser) list(depth int) ([]Node, stop, error) {
	var nodes []Node
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++

		switch tok.Kind {
		case Literal:
			nodes = append(nodes, &TextNode{Text: tok.Text})
		case VariableRef:
			nodes = append(nodes, &RefNode{Name: tok.Text, Span: tok.Span})
		case IfOpen:
			n, err := p.conditional(tok, depth+1)
			if err != nil {
				return nil, stop{}, err
			}
			nodes = append(nodes, n)
		case Else, End:
			return nodes, stop{kind: tok.Kind, tok: tok}, nil
		}
	}
	return nodes, stop{eof: true}, nil
}

// conditional parses the body of an IfOpen token at the given depth.
func (p *parser) conditional(open Token, depth int) (*IfNode, error) {
	if p.maxDepth > 0 && depth > p.maxDepth {
		return nil, newError(NestingTooDeep,
			fmt.Sprintf("Conditional blocks nested too deeply (limit %d)", p.maxDepth), open.Span, p.src)
	}

	n := &IfNode{Cond: open.Text, Span: open.Span}

	then, st, err := p.list(depth)
	if err != nil {
		return nil, err
	}
	n.Then = then

	if !st.eof && st.kind == Else {
		els, st2, err := p.list(depth)
		if err != nil {
			return nil, err
		}
		if !st2.eof && st2.kind == Else {
			return nil, newError(DuplicateElse, "Too many ${else} blocks", st2.tok.Span, p.src)
		}
		// An empty else branch is still an else branch.
		if els == nil {
			els = []Node{}
		}
		n.Else = els
		st = st2
	}

	if st.eof {
		return nil, newError(MissingEnd, "Missing ${end}", endSpan(p.src), p.src)
	}
	return n, nil
}
