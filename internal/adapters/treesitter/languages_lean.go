//go:build lean

package treesitter

// Build with: go build -tags lean ./cmd/rustwriter/

// registerBuiltinLanguages is a no-op in lean builds.
// The grammar is loaded through the DynamicLoader.
func (p *Parser) registerBuiltinLanguages() {}
