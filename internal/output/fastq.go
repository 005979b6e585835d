// internal/output/fastq.go
package output

import (
	"io"

	"reseg/internal/reseg"
)

// StreamFASTQ copies each result's FASTQ record to w. The channel is always
// drained.
func StreamFASTQ(w io.Writer, in <-chan reseg.Result) error {
	var err error
	for r := range in {
		if err != nil || r.Fastq == "" {
			continue
		}
		_, err = io.WriteString(w, r.Fastq)
	}
	return err
}

// WriteFASTQ writes the FASTQ records of a slice of results.
func WriteFASTQ(w io.Writer, list []reseg.Result) error {
	for _, r := range list {
		if r.Fastq == "" {
			continue
		}
		if _, err := io.WriteString(w, r.Fastq); err != nil {
			return err
		}
	}
	return nil
}
