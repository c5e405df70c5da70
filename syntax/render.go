package syntax

import (
	"strconv"
	"strings"
)

// Render prints the tree. Untouched trees come back byte for byte, with one
// exception: inside token trees (macro invocation bodies) outer doc comments
// are printed in attribute form, #[doc = "..."], since a token stream carries
// attributes rather than comments.
func Render(t *Tree) string {
	var sb strings.Builder
	if t.Root != nil {
		render(&sb, t.Root, false)
	}
	sb.WriteString(t.Trailing)
	return sb.String()
}

// RenderNode prints a single subtree, leading trivia included.
func RenderNode(n *Node) string {
	var sb strings.Builder
	render(&sb, n, n.inTokenTree())
	return sb.String()
}

func render(sb *strings.Builder, n *Node, inTokens bool) {
	if n.IsLeaf() {
		sb.WriteString(n.Leading)
		if inTokens && isOuterDocComment(n) {
			writeDocAttribute(sb, n.Value)
			return
		}
		sb.WriteString(n.Value)
		return
	}
	inTokens = inTokens || n.Kind == KindTokenTree
	for _, c := range n.Children {
		render(sb, c, inTokens)
	}
}

func (n *Node) inTokenTree() bool {
	for p := n.parent; p != nil; p = p.parent {
		if p.Kind == KindTokenTree {
			return true
		}
	}
	return false
}

// isOuterDocComment matches "/// text" but not "//// text".
func isOuterDocComment(n *Node) bool {
	return n.Kind == KindLineComment &&
		strings.HasPrefix(n.Value, "///") &&
		!strings.HasPrefix(n.Value, "////")
}

func writeDocAttribute(sb *strings.Builder, comment string) {
	body, eol := comment, ""
	if trimmed, ok := strings.CutSuffix(body, "\n"); ok {
		body, eol = trimmed, "\n"
		if trimmed, ok := strings.CutSuffix(body, "\r"); ok {
			body, eol = trimmed, "\r\n"
		}
	}
	sb.WriteString(`#[doc = `)
	sb.WriteString(strconv.Quote(strings.TrimPrefix(body, "///")))
	sb.WriteString(`]`)
	sb.WriteString(eol)
}
