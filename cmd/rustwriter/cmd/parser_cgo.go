//go:build cgo

package cmd

import (
	"github.com/corey/rustwriter/internal/adapters/treesitter"
	"github.com/corey/rustwriter/preserver"
)

// newParser returns a tree-sitter parser when CGo is available.
func newParser(root string, grammarDirs []string) preserver.Parser {
	return newTreeSitterParser(root, grammarDirs)
}

// newTreeSitterParser searches grammar directories from flags and config
// before the project-local and global defaults.
func newTreeSitterParser(root string, grammarDirs []string) *treesitter.Parser {
	p := treesitter.NewParser()
	p.SetGrammarPaths(append(grammarDirs, treesitter.DefaultGrammarPaths(root)...))
	return p
}
