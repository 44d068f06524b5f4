package sexp

import (
	"strconv"
	"strings"
)

// Format assigns native-writer whitespace to a synthesized subtree:
// the node starts on its own line indented with one tab per depth
// level, atoms are separated by single spaces, and nested lists are
// placed on their own lines. Runs of (xy ...) point lists stay on one
// shared line, matching how the native tool writes wire point lists.
//
// Format is for nodes built programmatically; parsed nodes keep the
// whitespace they were read with and must not be reformatted.
func Format(n *Node, depth int) {
	n.prefix = "\n" + strings.Repeat("\t", depth)
	formatBody(n, depth)
}

func formatBody(n *Node, depth int) {
	if n.Kind != KindList {
		return
	}
	hasBlock := false
	prevList := false
	for i, c := range n.Children {
		switch {
		case c.Kind != KindList:
			if i == 0 {
				c.prefix = ""
			} else {
				c.prefix = " "
			}
		case c.Name() == "xy" && prevList:
			formatInline(c)
		default:
			Format(c, depth+1)
			hasBlock = true
		}
		prevList = c.Kind == KindList
	}
	if hasBlock {
		n.closing = "\n" + strings.Repeat("\t", depth)
	} else {
		n.closing = ""
	}
}

func formatInline(n *Node) {
	n.prefix = " "
	n.closing = ""
	for i, c := range n.Children {
		if c.Kind == KindList {
			formatInline(c)
			continue
		}
		if i == 0 {
			c.prefix = ""
		} else {
			c.prefix = " "
		}
	}
}

// FormatCoord renders a coordinate the way the native writer does: at
// most four decimal places with trailing zeros removed.
func FormatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
