package syntax

// Tree is a parsed source file.
type Tree struct {
	Root     *Node
	Trailing string // text after the last token
}

// NewTree wires parent links below root and returns the tree.
func NewTree(root *Node, trailing string) *Tree {
	link(root, nil)
	return &Tree{Root: root, Trailing: trailing}
}

func link(n, parent *Node) {
	n.parent = parent
	for _, c := range n.Children {
		link(c, n)
	}
}

// Find returns every node of the given kind, in source order.
func (t *Tree) Find(kind string) []*Node {
	if t.Root == nil {
		return nil
	}
	return t.Root.Find(kind)
}

// FindItem returns the first node of the given kind named name, or nil.
func (t *Tree) FindItem(kind, name string) *Node {
	if t.Root == nil {
		return nil
	}
	return t.Root.FindItem(kind, name)
}

// Clone returns a deep copy that can be mutated independently.
func (t *Tree) Clone() *Tree {
	c := &Tree{Trailing: t.Trailing}
	if t.Root != nil {
		c.Root = t.Root.clone(nil)
	}
	return c
}
