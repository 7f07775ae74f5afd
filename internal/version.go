package internal

import (
	"bytes"
	"fmt"
	"runtime"
)

// set via ldflags on release builds
var (
	version = "dev"
	commit  = "?"
	date    = "?"
)

// BuildVersionString returns the version, commit, build date and Go version of the binary.
func BuildVersionString() string {
	var result bytes.Buffer

	fmt.Fprintf(&result, "version: %s\n", version)
	fmt.Fprintf(&result, "commit: %s\n", commit)
	fmt.Fprintf(&result, "built at: %s\n", date)
	fmt.Fprintf(&result, "using: %s", runtime.Version())

	return result.String()
}
