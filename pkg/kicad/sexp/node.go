// Package sexp implements the S-expression codec for KiCad schematic
// files. Unlike general-purpose sexp libraries, every token keeps the
// exact whitespace and raw text it was read with, so an unmodified
// parse/emit cycle reproduces the input byte for byte.
package sexp

import (
	"strconv"
	"strings"
)

// Kind identifies the shape of a Node.
type Kind int

const (
	KindSymbol Kind = iota // bare atom (identifier, number, keyword)
	KindString             // quoted string
	KindList               // parenthesized list
)

// Node is a single element of the parsed value tree. Atoms keep the raw
// source text of their token; lists keep the whitespace that preceded
// their closing parenthesis. A Node built programmatically has empty
// whitespace until Format assigns it.
type Node struct {
	Kind     Kind
	Children []*Node

	raw    string // exact token text, quotes included for strings
	val    string // decoded value, strings only
	prefix string // whitespace before the token or '('
	closing string // whitespace before ')', lists only
}

// NewSymbol creates a bare atom node.
func NewSymbol(text string) *Node {
	return &Node{Kind: KindSymbol, raw: text}
}

// NewString creates a quoted string node holding the unescaped value.
func NewString(val string) *Node {
	return &Node{Kind: KindString, raw: quote(val), val: val}
}

// NewList creates a list node from the given children.
func NewList(children ...*Node) *Node {
	return &Node{Kind: KindList, Children: children}
}

// IsList reports whether the node is a parenthesized list.
func (n *Node) IsList() bool { return n.Kind == KindList }

// Name returns the head symbol of a list, or "" for atoms and lists
// that do not start with a symbol.
func (n *Node) Name() string {
	if n.Kind != KindList || len(n.Children) == 0 {
		return ""
	}
	head := n.Children[0]
	if head.Kind != KindSymbol {
		return ""
	}
	return head.raw
}

// Value returns the decoded content of an atom: the raw text for
// symbols, the unescaped value for strings. Lists return "".
func (n *Node) Value() string {
	switch n.Kind {
	case KindSymbol:
		return n.raw
	case KindString:
		return n.val
	}
	return ""
}

// SetSymbol turns the node into a bare atom with the given text,
// keeping its surrounding whitespace.
func (n *Node) SetSymbol(text string) {
	n.Kind = KindSymbol
	n.raw = text
	n.val = ""
	n.Children = nil
}

// SetString turns the node into a quoted string holding val, keeping
// its surrounding whitespace.
func (n *Node) SetString(val string) {
	n.Kind = KindString
	n.raw = quote(val)
	n.val = val
	n.Children = nil
}

// Len returns the number of children of a list (0 for atoms).
func (n *Node) Len() int { return len(n.Children) }

// Child returns the i-th child of a list, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if n.Kind != KindList || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Find returns the first child list whose head symbol is key, or a
// bare child symbol equal to key. The boolean reports success.
func (n *Node) Find(key string) (*Node, bool) {
	if n.Kind != KindList {
		return nil, false
	}
	for _, c := range n.Children {
		switch c.Kind {
		case KindSymbol:
			if c.raw == key {
				return c, true
			}
		case KindList:
			if c.Name() == key {
				return c, true
			}
		}
	}
	return nil, false
}

// FindAll returns every child list whose head symbol is key.
func (n *Node) FindAll(key string) []*Node {
	var out []*Node
	if n.Kind != KindList {
		return out
	}
	for _, c := range n.Children {
		if c.Kind == KindList && c.Name() == key {
			out = append(out, c)
		}
	}
	return out
}

// HasSymbol reports whether the list contains sym as a bare atom.
func (n *Node) HasSymbol(sym string) bool {
	if n.Kind != KindList {
		return false
	}
	for _, c := range n.Children {
		if c.Kind == KindSymbol && c.raw == sym {
			return true
		}
	}
	return false
}

// String returns the decoded value of child i.
func (n *Node) String(i int) (string, error) {
	c := n.Child(i)
	if c == nil {
		return "", &SyntaxError{Msg: "index " + strconv.Itoa(i) + " out of range in (" + n.Name() + " ...)"}
	}
	if c.Kind == KindList {
		return "", &SyntaxError{Msg: "expected atom at index " + strconv.Itoa(i) + " in (" + n.Name() + " ...)"}
	}
	return c.Value(), nil
}

// Float returns child i parsed as a float64.
func (n *Node) Float(i int) (float64, error) {
	s, err := n.String(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &SyntaxError{Msg: "invalid number " + strconv.Quote(s) + " in (" + n.Name() + " ...)"}
	}
	return v, nil
}

// Int returns child i parsed as an int.
func (n *Node) Int(i int) (int, error) {
	s, err := n.String(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &SyntaxError{Msg: "invalid integer " + strconv.Quote(s) + " in (" + n.Name() + " ...)"}
	}
	return v, nil
}

// Append adds children to the end of a list.
func (n *Node) Append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Index returns the position of c among the children, or -1.
func (n *Node) Index(c *Node) int {
	for i, child := range n.Children {
		if child == c {
			return i
		}
	}
	return -1
}

// InsertBefore inserts c in front of target. It reports whether target
// was found.
func (n *Node) InsertBefore(target, c *Node) bool {
	i := n.Index(target)
	if i < 0 {
		return false
	}
	n.Children = append(n.Children[:i], append([]*Node{c}, n.Children[i:]...)...)
	return true
}

// RemoveChild removes c from the children. It reports whether c was
// found.
func (n *Node) RemoveChild(c *Node) bool {
	i := n.Index(c)
	if i < 0 {
		return false
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	return true
}

// quote escapes a string value the way the native writer does: only
// backslash and double quote are escaped, everything else passes
// through verbatim.
func quote(val string) string {
	var b strings.Builder
	b.Grow(len(val) + 2)
	b.WriteByte('"')
	for i := 0; i < len(val); i++ {
		switch val[i] {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(val[i])
		}
	}
	b.WriteByte('"')
	return b.String()
}
