// internal/cmdutil/log.go
package cmdutil

import (
	"io"

	"github.com/charmbracelet/log"

	"reseg/internal/logging"
)

// NewLogger builds the stderr logger of a binary and installs it as the
// package default of internal/logging.
func NewLogger(dst io.Writer, level string) (*log.Logger, error) {
	l, err := logging.New(dst, level)
	if err != nil {
		return nil, err
	}
	l = l.WithPrefix("reseg")
	logging.Logger = l
	return l, nil
}
