package sexp

import (
	"io"
	"strings"
)

// Emit serializes the document back to text. The output is a pure
// function of the tree: for a freshly parsed, unmodified document it is
// byte-identical to the input, because every token carries its original
// whitespace and raw text.
func Emit(doc *Document) string {
	var b strings.Builder
	for _, n := range doc.Roots {
		emitNode(&b, n)
	}
	b.WriteString(doc.trailing)
	return b.String()
}

// Write serializes the document to w.
func Write(w io.Writer, doc *Document) error {
	_, err := io.WriteString(w, Emit(doc))
	return err
}

func emitNode(b *strings.Builder, n *Node) {
	b.WriteString(n.prefix)
	if n.Kind != KindList {
		b.WriteString(n.raw)
		return
	}
	b.WriteByte('(')
	for _, c := range n.Children {
		emitNode(b, c)
	}
	b.WriteString(n.closing)
	b.WriteByte(')')
}
