package cmd

import (
	"errors"
	"fmt"

	"github.com/corey/rustwriter/preserver"
)

// Exit codes. Non-preservable code gets its own code so scripts can tell
// "narrow your preservers" apart from I/O and usage errors.
const (
	exitOK             = 0
	exitError          = 1
	exitNonPreservable = 2
)

// failuresError is returned after per-file results were already printed.
type failuresError struct {
	failed int
	total  int
	code   int
}

func (e *failuresError) Error() string {
	return fmt.Sprintf("%d of %d files failed", e.failed, e.total)
}

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var fe *failuresError
	if errors.As(err, &fe) {
		return fe.code
	}
	if errors.Is(err, preserver.ErrNonPreservableCode) {
		return exitNonPreservable
	}
	return exitError
}

// codeFor returns the exit code a single per-file error deserves.
func codeFor(err error) int {
	if errors.Is(err, preserver.ErrNonPreservableCode) {
		return exitNonPreservable
	}
	return exitError
}
