// internal/writers/brokenpipe.go
package writers

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// IsBrokenPipe reports whether err means the reader of stdout went away,
// e.g. `reseg ... | head`. Such errors end a run quietly with exit 0.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed)
}
