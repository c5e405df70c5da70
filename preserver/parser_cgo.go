//go:build cgo

package preserver

import "github.com/corey/rustwriter/internal/adapters/treesitter"

// defaultParser returns the tree-sitter Rust parser when CGo is available.
func defaultParser() Parser {
	return treesitter.NewParser()
}
