package sexp

import (
	"io"
	"strings"
)

// Document is a parsed S-expression file: the top-level nodes plus the
// whitespace that trailed the final token. Emit reproduces the original
// text exactly when the tree is unmodified.
type Document struct {
	Roots    []*Node
	trailing string
}

// Root returns the first top-level node, or nil for an empty document.
func (d *Document) Root() *Node {
	if len(d.Roots) == 0 {
		return nil
	}
	return d.Roots[0]
}

// Parse reads all top-level S-expressions from r.
func Parse(r io.Reader) (*Document, error) {
	p := &parser{lexer: newLexer(r)}
	return p.parseAll()
}

// ParseString parses S-expressions from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

type parser struct {
	lexer   *lexer
	current token
}

func (p *parser) advance() error {
	tok, err := p.lexer.next()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *parser) parseAll() (*Document, error) {
	doc := &Document{}

	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.current.typ != tokenEOF {
		node, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		doc.Roots = append(doc.Roots, node)

		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	doc.trailing = p.current.prefix

	return doc, nil
}

func (p *parser) parseExpr() (*Node, error) {
	switch p.current.typ {
	case tokenLeftParen:
		return p.parseList()

	case tokenSymbol:
		return &Node{Kind: KindSymbol, raw: p.current.raw, prefix: p.current.prefix}, nil

	case tokenString:
		return &Node{Kind: KindString, raw: p.current.raw, val: p.current.val, prefix: p.current.prefix}, nil

	case tokenRightParen:
		return nil, &SyntaxError{Line: p.current.line, Col: p.current.col, Msg: "unexpected ')'"}

	default:
		return nil, &SyntaxError{Line: p.current.line, Col: p.current.col, Msg: "unexpected end of input"}
	}
}

func (p *parser) parseList() (*Node, error) {
	node := &Node{Kind: KindList, prefix: p.current.prefix}
	open := p.current

	for {
		if err := p.advance(); err != nil {
			return nil, err
		}

		if p.current.typ == tokenRightParen {
			node.closing = p.current.prefix
			return node, nil
		}
		if p.current.typ == tokenEOF {
			return nil, &SyntaxError{Line: open.line, Col: open.col, Msg: "unbalanced '(': reached end of input"}
		}

		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, elem)
	}
}
