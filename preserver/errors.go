package preserver

import (
	"errors"
	"fmt"
)

var (
	// ErrNonPreservableCode reports that the placeholder-encoded text did not
	// parse. The only way to get there is a preserved region that is not
	// well formed on its own, e.g. a comment inside a struct body: narrow or
	// fix the preservers, retrying will not help.
	ErrNonPreservableCode = errors.New("the code cannot be safely preserved: a preserved region is not well formed on its own")

	// ErrNoParser is returned when the pipeline has no parser, which is the
	// case for builds without cgo.
	ErrNoParser = errors.New("no syntax parser available (built without cgo)")
)

// IOError wraps a failure reading the source or writing the target.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %v", e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
