//go:build cgo

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/rustwriter/internal/adapters/treesitter"
)

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Show which Rust grammar is used",
	Long: "Reports whether the Rust grammar is compiled in or loaded from a shared\n" +
		"library, and lists the grammar search paths. Exits non-zero when no\n" +
		"grammar is available.",
	Args: cobra.NoArgs,
	RunE: runGrammar,
}

func runGrammar(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p := newTreeSitterParser(cfg.Dir, append(cfg.ResolvedGrammarDirs(), grammarDirFlag...))
	return writeGrammarStatus(cmd.OutOrStdout(), p)
}

func writeGrammarStatus(out io.Writer, p *treesitter.Parser) error {
	loader := p.Loader()
	lib := loader.GrammarPath(treesitter.Rust)

	switch {
	case p.Builtin(treesitter.Rust):
		fmt.Fprintln(out, "Status:       built-in (compiled into binary)")
	case lib != "":
		fmt.Fprintf(out, "Status:       dynamic (%s)\n", lib)
	default:
		fmt.Fprintln(out, "Status:       not installed")
	}
	fmt.Fprintf(out, "C symbol:     %s\n", treesitter.CSymbolName(treesitter.Rust))
	fmt.Fprintf(out, "Library file: %s%s\n", treesitter.Rust, treesitter.LibExtension())
	fmt.Fprintf(out, "Search paths: %s\n", strings.Join(loader.SearchPaths(), ", "))

	installed := "none"
	if names := loader.InstalledGrammars(); len(names) > 0 {
		installed = strings.Join(names, ", ")
	}
	fmt.Fprintf(out, "Installed:    %s\n", installed)

	if !p.HasLanguage(treesitter.Rust) {
		return fmt.Errorf("%s: %w", treesitter.Rust, treesitter.ErrGrammarUnavailable)
	}
	return nil
}
