package ast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// IsComment reports tree-sitter comment nodes, which are never analyzed.
func IsComment(n *sitter.Node) bool {
	return n != nil && n.Type() == "comment"
}

// NamedChildren returns the named children of n, comments excluded.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		if c == nil || IsComment(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Unquote strips the quotes of a JS string or template literal.
func Unquote(s string) string {
	if len(s) >= 2 {
		switch s[0] {
		case '"', '\'', '`':
			if s[len(s)-1] == s[0] {
				return s[1 : len(s)-1]
			}
		}
	}
	return s
}

// IsWhitespace reports text made only of spaces and line breaks.
func IsWhitespace(s string) bool {
	return strings.TrimSpace(s) == ""
}
