package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/corey/rustwriter/internal/app"
	"github.com/corey/rustwriter/internal/config"
	"github.com/corey/rustwriter/preserver"
)

var (
	configFlag     string
	keepFlags      []string
	grammarDirFlag []string
	verboseFlag    bool
	logJSONFlag    bool
	colorFlag      string
)

var rootCmd = &cobra.Command{
	Use:   "rustwriter",
	Short: "Rewrite parts of Rust files without touching the rest",
	Long: "Parses only the items selected by preservers (e.g. \"impl Display for Point > fn fmt\")\n" +
		"and writes the file back with every other line exactly as it was.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	var fe *failuresError
	if err != nil && !errors.As(err, &fe) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "Config file (default: ./"+config.FileName+" if present)")
	pf.StringArrayVarP(&keepFlags, "keep", "k", nil, `Preserver chain, e.g. "impl A for B > fn c" (repeatable)`)
	pf.StringArrayVar(&grammarDirFlag, "grammar-dir", nil, "Directory holding rust.so/rust.dylib for lean builds (repeatable)")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Debug logging on stderr")
	pf.BoolVar(&logJSONFlag, "log-json", false, "Log as JSON")
	pf.StringVar(&colorFlag, "color", "auto", "Colorize output: auto, always, never")

	rootCmd.AddCommand(preserveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(roundtripCmd)
	rootCmd.AddCommand(grammarCmd)
}

// newLogger builds the CLI logger from --verbose and --log-json.
func newLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verboseFlag {
		opts.Level = slog.LevelDebug
	}
	if logJSONFlag {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadConfig reads --config, or the project config in the working directory.
func loadConfig() (*config.Config, error) {
	if configFlag != "" {
		return config.Load(configFlag)
	}
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Find(dir)
}

// session is everything a subcommand needs, built from flags and config.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	runner *app.Runner
	files  []string
}

func newSession(cmd *cobra.Command, args []string) (*session, error) {
	logger := newLogger(cmd.ErrOrStderr())

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	preservers, err := cfg.BuildPreservers(keepFlags...)
	if err != nil {
		return nil, err
	}

	grammarDirs := append(cfg.ResolvedGrammarDirs(), grammarDirFlag...)
	pl := preserver.New(
		preserver.WithParser(newParser(cfg.Dir, grammarDirs)),
		preserver.WithLogger(logger),
	)

	files, err := targetFiles(cfg, args)
	if err != nil {
		return nil, err
	}

	logger.Debug("session",
		"config_dir", cfg.Dir,
		"preservers", len(preservers),
		"files", len(files),
		"grammar_dirs", grammarDirs)

	return &session{
		cfg:    cfg,
		logger: logger,
		runner: app.NewRunner(pl, preservers, logger),
		files:  files,
	}, nil
}

// targetFiles returns the command line files, or the configured ones.
func targetFiles(cfg *config.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		files := cfg.ResolvedFiles()
		if len(files) == 0 {
			return nil, fmt.Errorf("no files given and none configured in %s", config.FileName)
		}
		return files, nil
	}
	files := make([]string, 0, len(args))
	for _, a := range args {
		abs, err := filepath.Abs(a)
		if err != nil {
			return nil, err
		}
		files = append(files, abs)
	}
	return files, nil
}
