package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/corey/rustwriter/internal/app"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// isStdoutTTY returns true if stdout is connected to a terminal.
func isStdoutTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// resolveColor determines whether to use color output from --color and the
// TTY status.
func resolveColor(colorFlag string) bool {
	switch colorFlag {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		return isStdoutTTY()
	}
}

func paint(s, color string, useColor bool) string {
	if !useColor {
		return s
	}
	return color + s + colorReset
}

// formatResult renders one per-file line:
//
//	ok       src/lib.rs
//	changed  src/main.rs
//	FAIL     src/bad.rs: the code cannot be safely preserved: ...
func formatResult(res app.Result, useColor bool) string {
	switch {
	case res.Err != nil:
		return fmt.Sprintf("%s %s: %v", paint("FAIL   ", colorRed, useColor), res.Path, res.Err)
	case res.Changed:
		return fmt.Sprintf("%s %s", paint("changed", colorYellow, useColor), res.Path)
	default:
		return fmt.Sprintf("%s %s", paint("ok     ", colorGreen, useColor), res.Path)
	}
}

// printResults writes all results plus a summary and returns a
// *failuresError when any file failed.
func printResults(w io.Writer, results []app.Result, useColor bool) error {
	failed, changed, code := 0, 0, exitOK
	for _, res := range results {
		fmt.Fprintln(w, formatResult(res, useColor))
		if res.Diff != "" {
			fmt.Fprint(w, res.Diff)
		}
		if res.Err != nil {
			failed++
			code = max(code, codeFor(res.Err))
		}
		if res.Changed {
			changed++
		}
	}

	summary := fmt.Sprintf("%d files, %d changed, %d failed", len(results), changed, failed)
	fmt.Fprintln(w, paint(summary, colorGray, useColor))

	if failed > 0 {
		return &failuresError{failed: failed, total: len(results), code: code}
	}
	return nil
}
