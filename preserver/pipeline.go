// Package preserver parses Rust files so that only selected regions become
// real syntax nodes, and writes mutated trees back without losing the rest.
//
// PreserveAndParse reads a file, rewrites every line that no Preserver claims
// into a placeholder doc comment (see Apply) and parses the result. Callers
// find and rewrite the preserved nodes in the returned tree, then call
// ResolvePreserved, which renders the tree and expands the placeholders back
// into the original text (see Unpreserve).
//
// Non-preserved lines are kept byte for byte. Preserved regions go through
// the renderer, so they may show formatting drift; doc comments inside macro
// invocations, for instance, come back as #[doc = "..."] attributes.
package preserver

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/corey/rustwriter/syntax"
)

// Parser turns text into a tree. A grammar rejection must be reported as a
// *syntax.ParseError; any other error is treated as an infrastructure failure.
type Parser interface {
	Parse(source []byte) (*syntax.Tree, error)
}

// Renderer turns a tree back into text.
type Renderer interface {
	Render(tree *syntax.Tree) string
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(tree *syntax.Tree) string

// Render calls f(tree).
func (f RendererFunc) Render(tree *syntax.Tree) string {
	return f(tree)
}

// Pipeline runs preserve/parse and render/resolve with a fixed parser,
// renderer and logger. It holds no per-file state, so one Pipeline may serve
// many goroutines.
type Pipeline struct {
	parser   Parser
	renderer Renderer
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithParser replaces the default tree-sitter Rust parser.
func WithParser(p Parser) Option {
	return func(pl *Pipeline) {
		pl.parser = p
	}
}

// WithRenderer replaces syntax.Render.
func WithRenderer(r Renderer) Option {
	return func(pl *Pipeline) {
		pl.renderer = r
	}
}

// WithLogger sets the logger for debug records. Defaults to discarding.
func WithLogger(l *slog.Logger) Option {
	return func(pl *Pipeline) {
		if l != nil {
			pl.logger = l
		}
	}
}

// New returns a pipeline using the compiled-in Rust parser unless overridden.
func New(opts ...Option) *Pipeline {
	pl := &Pipeline{
		renderer: RendererFunc(syntax.Render),
		logger:   slog.New(slog.DiscardHandler),
	}
	if p := defaultParser(); p != nil {
		pl.parser = p
	}
	for _, opt := range opts {
		opt(pl)
	}
	return pl
}

// PreserveAndParse reads path, applies the preservers and parses the result.
// Read failures are *IOError; a parse rejection is ErrNonPreservableCode.
func (pl *Pipeline) PreserveAndParse(path string, preservers ...*Preserver) (*syntax.Tree, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Err: err}
	}
	return pl.ParseSource(path, source, preservers...)
}

// ParseSource is PreserveAndParse for source the caller has already read.
// path only labels errors and log records.
func (pl *Pipeline) ParseSource(path string, source []byte, preservers ...*Preserver) (*syntax.Tree, error) {
	code := Apply(string(source), preservers)
	pl.logger.Debug("applied preservers",
		"path", path,
		"preservers", len(preservers),
		"source_bytes", len(source),
		"preserved_bytes", len(code))

	tree, err := pl.Ingest(code)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// Ingest parses placeholder-encoded code. The parser diagnostic is logged and
// then dropped: it points into text the caller never sees.
func (pl *Pipeline) Ingest(code string) (*syntax.Tree, error) {
	if pl.parser == nil {
		return nil, ErrNoParser
	}

	tree, err := pl.parser.Parse([]byte(code))
	if err != nil {
		var perr *syntax.ParseError
		if errors.As(err, &perr) {
			pl.logger.Debug("preserved code rejected by parser",
				"line", perr.Line,
				"column", perr.Column,
				"kind", perr.Kind)
			return nil, ErrNonPreservableCode
		}
		return nil, fmt.Errorf("parsing preserved code: %w", err)
	}
	return tree, nil
}

// Resolve renders tree and removes the placeholder encoding.
func (pl *Pipeline) Resolve(tree *syntax.Tree) string {
	return Unpreserve(pl.renderer.Render(tree))
}

// ResolvePreserved writes the resolved text of tree to path, keeping the
// permission bits of an existing file. The write is not atomic.
func (pl *Pipeline) ResolvePreserved(tree *syntax.Tree, path string) error {
	code := pl.Resolve(tree)

	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(code), perm); err != nil {
		return &IOError{Err: err}
	}

	pl.logger.Debug("resolved preserved code", "path", path, "bytes", len(code))
	return nil
}

// PreserveAndParse runs New().PreserveAndParse.
func PreserveAndParse(path string, preservers ...*Preserver) (*syntax.Tree, error) {
	return New().PreserveAndParse(path, preservers...)
}

// ResolvePreserved runs New().ResolvePreserved.
func ResolvePreserved(tree *syntax.Tree, path string) error {
	return New().ResolvePreserved(tree, path)
}
