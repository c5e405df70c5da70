// Package treesitter parses Rust source into lossless syntax trees using
// tree-sitter grammars.
//
// The Rust grammar is compiled in via CGo from the official tree-sitter repo.
// Builds with -tags lean carry no grammar and load it at runtime from a
// shared library through purego (see DynamicLoader).
package treesitter

import (
	"errors"
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/rustwriter/syntax"
)

// Rust is the language name of the host grammar.
const Rust = "rust"

// ErrGrammarUnavailable is returned when no grammar, compiled-in or dynamic,
// exists for the requested language.
var ErrGrammarUnavailable = errors.New("grammar not available")

// Parser builds syntax trees from source using tree-sitter grammars. It is
// safe for concurrent use; each parse gets its own tree-sitter parser.
type Parser struct {
	mu        sync.Mutex
	languages map[string]*tree_sitter.Language // lang name -> language
	builtin   map[string]bool                  // compiled in, as opposed to loaded
	loader    *DynamicLoader                   // optional: loads grammars from .so/.dylib
}

// NewParser creates a parser with the built-in grammars registered.
func NewParser() *Parser {
	p := &Parser{
		languages: make(map[string]*tree_sitter.Language),
		builtin:   make(map[string]bool),
	}
	p.registerBuiltinLanguages()
	return p
}

// addLang registers a compiled-in language by name.
func (p *Parser) addLang(name string, lang *tree_sitter.Language) {
	if lang != nil {
		p.languages[name] = lang
		p.builtin[name] = true
	}
}

// Parse parses Rust source. Source the grammar rejects yields a
// *syntax.ParseError pointing at the first error or missing node.
//
// The body of a macro_rules! definition is a token stream to rustc, but the
// grammar parses it as a list of rules. Errors inside it are therefore not
// rejections; the offending text is kept verbatim as an ERROR leaf.
func (p *Parser) Parse(source []byte) (*syntax.Tree, error) {
	return p.parse(Rust, source)
}

func (p *Parser) parse(langName string, source []byte) (*syntax.Tree, error) {
	lang, err := p.language(langName)
	if err != nil {
		return nil, err
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("set language %s: %w", langName, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree for %s source", langName)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if perr := firstError(root); perr != nil {
			return nil, perr
		}
	}
	return convert(root, source), nil
}

// language returns the grammar for langName, loading it dynamically the
// first time when it is not compiled in.
func (p *Parser) language(langName string) (*tree_sitter.Language, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if lang, ok := p.languages[langName]; ok {
		return lang, nil
	}
	if p.loader == nil {
		return nil, fmt.Errorf("%s: %w (not compiled in, no grammar paths set)", langName, ErrGrammarUnavailable)
	}
	loaded, err := p.loader.LoadGrammar(langName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGrammarUnavailable, err)
	}
	p.languages[langName] = loaded
	return loaded, nil
}

// SetGrammarPaths configures the parser to load grammars dynamically from
// shared libraries found in the given directories. Project-local paths should
// come first, global paths last.
func (p *Parser) SetGrammarPaths(paths []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loader = NewDynamicLoader(paths)
}

// Loader returns the dynamic grammar loader, or nil if not configured.
func (p *Parser) Loader() *DynamicLoader {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loader
}

// HasLanguage returns true if a grammar is available (compiled-in or
// dynamically loadable) for the given language name.
func (p *Parser) HasLanguage(lang string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.languages[lang]; ok {
		return true
	}
	if p.loader != nil {
		return p.loader.GrammarPath(lang) != ""
	}
	return false
}

// Builtin reports whether the grammar for lang is compiled into the binary.
// A compiled-in grammar is always used before a shared library.
func (p *Parser) Builtin(lang string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.builtin[lang]
}
