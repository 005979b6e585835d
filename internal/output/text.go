// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"reseg/internal/reseg"
)

// WriteText prints one TSV line per result.
func WriteText(w io.Writer, list []reseg.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, r := range list {
		if _, err := fmt.Fprintln(w, FormatRowTSV(r)); err != nil {
			return err
		}
	}
	return nil
}

// StreamText is WriteText for a channel. The channel is always drained.
func StreamText(w io.Writer, in <-chan reseg.Result, header bool) error {
	var err error
	if header {
		_, err = fmt.Fprintln(w, TSVHeader)
	}
	for r := range in {
		if err != nil {
			continue
		}
		_, err = fmt.Fprintln(w, FormatRowTSV(r))
	}
	return err
}
