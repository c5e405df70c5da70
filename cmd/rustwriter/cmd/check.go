package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	fsw "github.com/corey/rustwriter/internal/adapters/fsnotify"
	"github.com/corey/rustwriter/internal/app"
)

var checkWatchFlag bool

var checkCmd = &cobra.Command{
	Use:   "check [FILE...]",
	Short: "Report whether files can be parsed with the preservers applied",
	Long: "Runs preserve and parse on every file without writing anything.\n" +
		"Exits 2 when a file holds a preserved region that cannot stand on its own.",
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVarP(&checkWatchFlag, "watch", "w", false, "Keep running and re-check files when they change")
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	useColor := resolveColor(colorFlag)
	out := cmd.OutOrStdout()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := s.runner.Check(ctx, s.files)
	if err != nil {
		return err
	}
	failures := printResults(out, results, useColor)
	if !checkWatchFlag {
		return failures
	}

	w, err := fsw.NewWatcher(s.logger)
	if err != nil {
		return err
	}
	return s.runner.Watch(ctx, w, s.cfg.Dir, s.files, func(res app.Result) {
		fmt.Fprintln(out, formatResult(res, useColor))
	})
}
