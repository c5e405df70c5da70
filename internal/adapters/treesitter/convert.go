package treesitter

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/rustwriter/syntax"
)

// atomicKinds are kept as single leaves even though the grammar gives them
// children (doc comment markers, escape sequences, string content). ERROR
// only reaches conversion inside macro definitions, see firstError.
var atomicKinds = map[string]bool{
	syntax.KindLineComment:  true,
	syntax.KindBlockComment: true,
	"string_literal":        true,
	"raw_string_literal":    true,
	"char_literal":          true,
	kindError:               true,
}

const (
	kindError           = "ERROR"
	kindMacroDefinition = "macro_definition"
)

// converter copies a tree-sitter tree into a syntax.Tree. last is the end of
// the text already assigned to a leaf; whatever lies between it and the next
// leaf becomes that leaf's leading trivia.
type converter struct {
	source []byte
	last   uint
}

func convert(root *tree_sitter.Node, source []byte) *syntax.Tree {
	c := &converter{source: source}
	n := c.node(root, "")
	return syntax.NewTree(n, string(source[c.last:]))
}

func (c *converter) node(n *tree_sitter.Node, field string) *syntax.Node {
	count := n.ChildCount()
	if count == 0 || atomicKinds[n.Kind()] || !c.covered(n) {
		return c.leaf(n, field)
	}

	out := &syntax.Node{
		Kind:     n.Kind(),
		Field:    field,
		Named:    n.IsNamed(),
		Extra:    n.IsExtra(),
		Children: make([]*syntax.Node, 0, count),
	}
	for i := uint(0); i < count; i++ {
		child := n.Child(i)
		out.Children = append(out.Children, c.node(child, n.FieldNameForChild(uint32(i))))
	}
	return out
}

func (c *converter) leaf(n *tree_sitter.Node, field string) *syntax.Node {
	start, end := n.StartByte(), n.EndByte()
	start = max(start, c.last)
	end = max(end, start)
	leaf := &syntax.Node{
		Kind:    n.Kind(),
		Field:   field,
		Named:   n.IsNamed(),
		Extra:   n.IsExtra(),
		Leading: string(c.source[c.last:start]),
		Value:   string(c.source[start:end]),
	}
	c.last = end
	return leaf
}

// covered reports whether the children of n account for all of its
// non-whitespace text. Nodes that hide text between their children are kept
// as leaves so no byte is lost.
func (c *converter) covered(n *tree_sitter.Node) bool {
	prev := n.StartByte()
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.StartByte() > prev && !blank(c.source[prev:child.StartByte()]) {
			return false
		}
		prev = max(prev, child.EndByte())
	}
	return n.EndByte() <= prev || blank(c.source[prev:n.EndByte()])
}

func blank(b []byte) bool {
	return strings.TrimSpace(string(b)) == ""
}

// firstError locates the first ERROR or MISSING node in source order, or
// returns nil when every error lies inside a macro_rules! body. Those bodies
// are token streams to rustc, so the grammar's rule structure is not binding.
func firstError(root *tree_sitter.Node) *syntax.ParseError {
	var found *tree_sitter.Node
	var visit func(n *tree_sitter.Node)
	visit = func(n *tree_sitter.Node) {
		if found != nil || !n.HasError() && !n.IsMissing() || n.Kind() == kindMacroDefinition {
			return
		}
		if n.IsError() || n.IsMissing() {
			found = n
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			visit(n.Child(i))
		}
	}
	visit(root)

	if found == nil {
		return nil
	}
	pos := found.StartPosition()
	kind := kindError
	if found.IsMissing() {
		kind = found.Kind()
	}
	return &syntax.ParseError{Line: int(pos.Row) + 1, Column: int(pos.Column) + 1, Kind: kind}
}
