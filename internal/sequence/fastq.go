// internal/sequence/fastq.go
package sequence

import (
	"errors"
	"fmt"
	"strings"
)

// MinQuality is the phred+33 character for quality 0.
const MinQuality = '!'

// Fastq is a single four-line FASTQ record.
type Fastq struct {
	Header string // without the leading '@'
	Seq    string
	Qual   string
}

// String renders the record with a trailing newline.
func (f Fastq) String() string {
	return "@" + f.Header + "\n" + f.Seq + "\n+\n" + f.Qual + "\n"
}

// NewFastq builds a record whose quality string is MinQuality repeated to
// the sequence length.
func NewFastq(header, seq string) (Fastq, error) {
	return FastqWithQuality(header, seq, strings.Repeat(string(MinQuality), len(seq)))
}

// FastqWithQuality builds a record and checks its invariants.
func FastqWithQuality(header, seq, qual string) (Fastq, error) {
	f := Fastq{Header: header, Seq: seq, Qual: qual}
	if err := f.Check(); err != nil {
		return Fastq{}, err
	}
	return f, nil
}

// Check validates header, sequence/quality length and quality range.
func (f Fastq) Check() error {
	if strings.TrimSpace(f.Header) == "" {
		return errors.New("fastq: empty header")
	}
	if strings.ContainsAny(f.Header, "\n\r") || strings.ContainsAny(f.Seq, "\n\r") {
		return errors.New("fastq: embedded newline")
	}
	if len(f.Seq) != len(f.Qual) {
		return fmt.Errorf("fastq: sequence length %d != quality length %d", len(f.Seq), len(f.Qual))
	}
	for i := 0; i < len(f.Qual); i++ {
		if c := f.Qual[i]; c < '!' || c > '~' {
			return fmt.Errorf("fastq: quality %q at %d out of range", c, i)
		}
	}
	return nil
}

// ParseFastq reads exactly one record from s.
func ParseFastq(s string) (Fastq, error) {
	lines := strings.Split(strings.TrimRight(s, "\r\n"), "\n")
	if len(lines) != 4 {
		return Fastq{}, fmt.Errorf("fastq: want 4 lines, got %d", len(lines))
	}
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	if !strings.HasPrefix(lines[0], "@") {
		return Fastq{}, errors.New("fastq: header does not start with '@'")
	}
	if !strings.HasPrefix(lines[2], "+") {
		return Fastq{}, errors.New("fastq: separator line does not start with '+'")
	}
	return FastqWithQuality(lines[0][1:], lines[1], lines[3])
}
