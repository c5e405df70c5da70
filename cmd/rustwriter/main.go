// rustwriter rewrites selected items of Rust source files while keeping the
// rest of each file byte for byte.
package main

import (
	"os"

	"github.com/corey/rustwriter/cmd/rustwriter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
