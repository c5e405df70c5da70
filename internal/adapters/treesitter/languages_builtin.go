//go:build !lean

package treesitter

// This file registers the compiled-in Rust grammar. It is included in the
// default build but excluded when building with -tags lean, which produces a
// binary that loads the grammar dynamically from a .so/.dylib file.

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	ts_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

// registerBuiltinLanguages adds the compiled-in grammars to the parser.
func (p *Parser) registerBuiltinLanguages() {
	p.addLang(Rust, tree_sitter.NewLanguage(ts_rust.Language()))
}
