package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var roundtripDryRunFlag bool

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip [FILE...]",
	Short: "Preserve, parse and write files back",
	Long: "Runs the full pipeline and writes each file back in place. Without tree\n" +
		"edits the output equals the input, apart from doc comments inside macro\n" +
		"calls in preserved regions, which come back as #[doc] attributes.\n" +
		"Use --dry-run to print a unified diff instead of writing.",
	RunE: runRoundtrip,
}

func init() {
	roundtripCmd.Flags().BoolVarP(&roundtripDryRunFlag, "dry-run", "n", false, "Print a diff instead of writing")
}

func runRoundtrip(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := s.runner.RoundTrip(ctx, s.files, roundtripDryRunFlag)
	if err != nil {
		return err
	}
	return printResults(cmd.OutOrStdout(), results, resolveColor(colorFlag))
}
