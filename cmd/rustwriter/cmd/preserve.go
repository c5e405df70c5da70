package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var preserveCmd = &cobra.Command{
	Use:   "preserve FILE",
	Short: "Print the placeholder-encoded form of a file",
	Long: "Shows exactly what the parser sees: lines no preserver claims become\n" +
		"///TEMP_DOC comments, anchored by `type temp_marker = ();` inside blocks.",
	Args: cobra.ExactArgs(1),
	RunE: runPreserve,
}

func runPreserve(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	out, err := s.runner.Preserve(s.files[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
