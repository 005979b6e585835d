// internal/clibase/examples.go
package clibase

import (
	"errors"
	"fmt"
	"io"
)

// ErrPrintedAndExitOK is returned by ParseArgs for --examples. Callers print
// the tool's examples and exit 0.
var ErrPrintedAndExitOK = errors.New("examples requested")

// PrintExamples prints "<name> examples", the body and a pointer to -h.
func PrintExamples(out io.Writer, name string, body func(io.Writer)) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s examples\n\n", name)
	if body != nil {
		body(out)
	}
	_, _ = fmt.Fprintf(out, "\nRun %s -h for every flag.\n", name)
}
