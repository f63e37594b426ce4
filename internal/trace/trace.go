// Package trace provides the debug-entry logging used across
// pathcursor, gated on the PATHCURSOR_DEBUG environment variable.
package trace

import (
	"fmt"
	"os"
)

var enabled = os.Getenv("PATHCURSOR_DEBUG") != ""

// Entry logs that a Cursor method named name was entered, if
// PATHCURSOR_DEBUG is set in the environment. It is a no-op otherwise.
func Entry(name string) {
	if !enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "pathcursor: %s\n", name)
}
