package tree

import (
	"strings"
	"unicode"
)

// ptbEscapes maps Penn Treebank bracket escapes back to the characters
// that appear in raw text.
var ptbEscapes = map[string]string{
	"-LRB-": "(",
	"-RRB-": ")",
	"-LSB-": "[",
	"-RSB-": "]",
	"-LCB-": "{",
	"-RCB-": "}",
	"``":    `"`,
	"''":    `"`,
}

// Parse reads a bracketed tree such as
//
//	(S (NP (DT The)(NN winner))(VP (VBZ lives)))
//
// Words become terminal (token) nodes under their preterminal. When text
// is non-empty, tokens are aligned left to right against it and spans are
// byte offsets into text. Otherwise spans index the tokens joined by single
// spaces. Inner spans are the union of their children.
func Parse(s, text string) (*Tree, error) {
	p := &parser{src: s}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	if err := alignTokens(t, p.leaves, text); err != nil {
		return nil, err
	}
	return t, nil
}

type parser struct {
	src    string
	pos    int
	leaves []NodeID
}

func (p *parser) parse() (*Tree, error) {
	t, err := p.root()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected trailing input")
	}
	return t, nil
}

// root reads the top node. An unlabeled bracket around exactly one tree,
// as in "( (S ...))", is dropped and the inner tree becomes the root.
func (p *parser) root() (*Tree, error) {
	p.skipSpace()
	if !p.consume('(') {
		return nil, p.errorf("expected '('")
	}
	label := p.atom()
	if label == "" {
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != '(' {
			return nil, p.errorf("missing root label")
		}
		t, err := p.root()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consume(')') {
			return nil, p.errorf("unlabeled root must wrap a single tree")
		}
		return t, nil
	}
	t := New(label, Span{})
	if err := p.children(t, t.Root()); err != nil {
		return nil, err
	}
	return t, nil
}

// children reads the children of parent up to and including the closing
// parenthesis.
func (p *parser) children(t *Tree, parent NodeID) error {
	count := 0
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return p.errorf("unbalanced parentheses")
		}
		switch p.src[p.pos] {
		case ')':
			p.pos++
			if count == 0 {
				return p.errorf("node " + t.Node(parent).Label + " has no children")
			}
			return nil
		case '(':
			p.pos++
			label := p.atom()
			if label == "" {
				return p.errorf("missing label")
			}
			id := t.AddChild(parent, label, Span{})
			if err := p.children(t, id); err != nil {
				return err
			}
		default:
			word := p.atom()
			p.leaves = append(p.leaves, t.AddChild(parent, word, Span{}))
		}
		count++
	}
}

func (p *parser) atom() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if c == '(' || c == ')' || unicode.IsSpace(c) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *parser) errorf(msg string) error {
	return &ErrSyntax{Offset: p.pos, Msg: msg}
}

// alignTokens assigns leaf spans and then derives inner spans bottom up.
// Children always carry larger ids than their parent, so a reverse scan
// over the arena sees every child before its parent.
func alignTokens(t *Tree, leaves []NodeID, text string) error {
	cursor := 0
	for i, id := range leaves {
		n := t.nodes[id]
		if text == "" {
			if i > 0 {
				cursor++
			}
			n.Span = Span{Begin: cursor, End: cursor + len(n.Label)}
			cursor = n.Span.End
			continue
		}
		span, ok := locate(text, n.Label, cursor)
		if !ok {
			return &ErrTokenAlignment{Token: n.Label, From: cursor}
		}
		n.Span = span
		cursor = span.End
	}

	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := t.nodes[i]
		if n.IsLeaf() {
			continue
		}
		span := t.nodes[n.Children[0]].Span
		for _, c := range n.Children[1:] {
			span = span.Union(t.nodes[c].Span)
		}
		n.Span = span
	}
	return nil
}

func locate(text, token string, from int) (Span, bool) {
	candidates := []string{token}
	if raw, ok := ptbEscapes[token]; ok {
		candidates = append(candidates, raw)
	}
	for _, c := range candidates {
		if idx := strings.Index(text[from:], c); idx >= 0 {
			begin := from + idx
			return Span{Begin: begin, End: begin + len(c)}, true
		}
	}
	return Span{}, false
}
