// Package syntax holds a lossless, mutable syntax tree for Rust source.
//
// Every byte of the parsed text lives in exactly one place: either in the
// Leading trivia or the Value of a leaf, or in Tree.Trailing. Rendering an
// untouched tree therefore reproduces the parsed text byte for byte. Parsers
// (see internal/adapters/treesitter) build trees; callers search and rewrite
// them with the helpers in this package, then hand them back to Render.
package syntax

import "strings"

// Node kinds the package itself cares about. All other kinds are whatever
// the grammar produced.
const (
	KindLineComment  = "line_comment"
	KindBlockComment = "block_comment"
	KindTokenTree    = "token_tree"
)

// Node is one syntax node. Leaves carry text, inner nodes carry children.
type Node struct {
	Kind  string // grammar kind, e.g. "function_item", "{"
	Field string // field name in the parent, e.g. "name", "body"
	Named bool   // false for anonymous tokens such as punctuation
	Extra bool   // comments and other tokens allowed anywhere

	Leading string // whitespace preceding this leaf
	Value   string // leaf text; empty for inner nodes

	Children []*Node

	parent *Node
}

// NewLeaf returns a detached leaf. Use it to build replacement or inserted
// content; leading is printed verbatim before value.
func NewLeaf(kind, leading, value string) *Node {
	return &Node{Kind: kind, Named: true, Leading: leading, Value: value}
}

// NewNode returns a detached inner node owning children.
func NewNode(kind string, children ...*Node) *Node {
	n := &Node{Kind: kind, Named: true}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Parent returns the enclosing node, or nil for the root and detached nodes.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsComment reports whether n is a line or block comment.
func (n *Node) IsComment() bool {
	return n.Kind == KindLineComment || n.Kind == KindBlockComment
}

// Text returns the source text of the subtree without the leading trivia of
// its first token.
func (n *Node) Text() string {
	var sb strings.Builder
	first := true
	n.Walk(func(c *Node) bool {
		if !c.IsLeaf() {
			return true
		}
		if !first {
			sb.WriteString(c.Leading)
		}
		first = false
		sb.WriteString(c.Value)
		return true
	})
	return sb.String()
}

// LeadingTrivia returns the whitespace printed before the subtree.
func (n *Node) LeadingTrivia() string {
	if leaf := n.firstLeaf(); leaf != nil {
		return leaf.Leading
	}
	return ""
}

func (n *Node) firstLeaf() *Node {
	for n != nil && !n.IsLeaf() {
		n = n.Children[0]
	}
	return n
}

// Child returns the first child stored under field, or nil.
func (n *Node) Child(field string) *Node {
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// ChildByKind returns the first direct child of the given kind, or nil.
func (n *Node) ChildByKind(kind string) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// Name returns the text of the "name" field, which is how items such as
// functions, structs and traits are identified. Empty when absent.
func (n *Node) Name() string {
	if c := n.Child("name"); c != nil {
		return c.Text()
	}
	return ""
}

// Walk visits the subtree in source order. Returning false from fn skips the
// children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns every node of the given kind in the subtree, in source order.
func (n *Node) Find(kind string) []*Node {
	var found []*Node
	n.Walk(func(c *Node) bool {
		if c.Kind == kind {
			found = append(found, c)
		}
		return true
	})
	return found
}

// FindItem returns the first node of the given kind whose name is name.
func (n *Node) FindItem(kind, name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Kind == kind && c.Name() == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// IndexOf returns the position of c among the children of n, or -1.
func (n *Node) IndexOf(c *Node) int {
	for i, child := range n.Children {
		if child == c {
			return i
		}
	}
	return -1
}

// AppendChild adds c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	c.parent = n
	n.Children = append(n.Children, c)
}

// InsertChild places c at index i; i is clamped to the valid range.
func (n *Node) InsertChild(i int, c *Node) {
	i = max(0, min(i, len(n.Children)))
	c.parent = n
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = c
}

// InsertBefore inserts c right before the child ref. It reports false when
// ref is not a child of n.
func (n *Node) InsertBefore(ref, c *Node) bool {
	i := n.IndexOf(ref)
	if i < 0 {
		return false
	}
	n.InsertChild(i, c)
	return true
}

// InsertAfter inserts c right after the child ref. It reports false when
// ref is not a child of n.
func (n *Node) InsertAfter(ref, c *Node) bool {
	i := n.IndexOf(ref)
	if i < 0 {
		return false
	}
	n.InsertChild(i+1, c)
	return true
}

// RemoveChild detaches c from n.
func (n *Node) RemoveChild(c *Node) bool {
	i := n.IndexOf(c)
	if i < 0 {
		return false
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	c.parent = nil
	return true
}

// ReplaceWith puts m where n is in its parent. The root cannot be replaced.
func (n *Node) ReplaceWith(m *Node) bool {
	p := n.parent
	if p == nil {
		return false
	}
	i := p.IndexOf(n)
	if i < 0 {
		return false
	}
	m.parent = p
	p.Children[i] = m
	n.parent = nil
	return true
}

// SetText collapses the subtree into a single leaf printing text. The
// leading trivia of the subtree is kept so the edit stays in place.
func (n *Node) SetText(text string) {
	leading := n.LeadingTrivia()
	for _, c := range n.Children {
		c.parent = nil
	}
	n.Children = nil
	n.Leading = leading
	n.Value = text
}

func (n *Node) clone(parent *Node) *Node {
	c := *n
	c.parent = parent
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.clone(&c)
		}
	}
	return &c
}
