//go:build !cgo

package cmd

import "github.com/corey/rustwriter/preserver"

// newParser returns nil when CGo is unavailable (pure Go build).
// preserve still works; check and roundtrip report preserver.ErrNoParser.
func newParser(_ string, _ []string) preserver.Parser {
	return nil
}
