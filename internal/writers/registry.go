// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
)

// ResultWriterFunc serializes every result arriving on a.In to w.
type ResultWriterFunc func(w io.Writer, a ResultArgs) error

// Writer registry (format → handler). Registered in init() by result.go.
var resultWriters = map[string]ResultWriterFunc{}

// RegisterResult adds or replaces the handler for format (last wins).
func RegisterResult(format string, fn ResultWriterFunc) { resultWriters[format] = fn }

// Supported reports whether a handler is registered for format.
func Supported(format string) bool {
	_, ok := resultWriters[format]
	return ok
}

// Formats lists the registered formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(resultWriters))
	for f := range resultWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// WriteResults dispatches to the handler for format. An unknown format
// still drains a.In so producers never block.
func WriteResults(format string, w io.Writer, a ResultArgs) error {
	fn, ok := resultWriters[format]
	if !ok {
		for range a.In {
		}
		return fmt.Errorf("unknown result format %q (no writer registered)", format)
	}
	return fn(w, a)
}
