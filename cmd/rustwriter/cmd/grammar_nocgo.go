//go:build !cgo

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/rustwriter/preserver"
)

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Show which Rust grammar is used (requires CGo)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "This binary was built without CGo and cannot load tree-sitter grammars.")
		return fmt.Errorf("grammar: %w", preserver.ErrNoParser)
	},
}
