package syntax

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var (
	structural = []cmp.Option{
		cmpopts.IgnoreUnexported(Node{}),
		cmpopts.IgnoreFields(Node{}, "Leading"),
		cmpopts.IgnoreFields(Tree{}, "Trailing"),
		cmpopts.EquateEmpty(),
	}
	exact = []cmp.Option{
		cmpopts.IgnoreUnexported(Node{}),
		cmpopts.EquateEmpty(),
	}
)

// Equal reports whether two trees have the same shape and tokens.
// Whitespace between tokens is ignored.
func Equal(a, b *Tree) bool {
	return cmp.Equal(a, b, structural...)
}

// Identical is Equal plus whitespace: both trees render to the same text.
func Identical(a, b *Tree) bool {
	return cmp.Equal(a, b, exact...)
}

// Diff describes the structural differences between two trees, empty when
// they are Equal.
func Diff(a, b *Tree) string {
	return cmp.Diff(a, b, structural...)
}
