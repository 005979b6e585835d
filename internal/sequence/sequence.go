// internal/sequence/sequence.go
package sequence

import (
	"strings"

	"reseg/internal/events"
)

// FromEvents rebuilds the read implied by a labeled table: the whole kmer
// of the first event, then the last Move characters of each later kmer.
// A move larger than the kmer width cannot be represented and is rejected.
func FromEvents(t events.Table) (string, error) {
	if len(t.Events) == 0 {
		return "", nil
	}
	var b strings.Builder
	b.Grow(len(t.Events[0].ModelState) + len(t.Events))
	for i, ev := range t.Events {
		if i == 0 {
			b.WriteString(ev.ModelState)
			continue
		}
		switch {
		case ev.Move < 0:
			return "", events.Invalid("FromEvents", "move", "event %d has negative move %d", i, ev.Move)
		case ev.Move > len(ev.ModelState):
			return "", events.Invalid("FromEvents", "move", "event %d moves %d bases past a %d-mer", i, ev.Move, len(ev.ModelState))
		case ev.Move == 0:
			continue
		}
		b.WriteString(ev.ModelState[len(ev.ModelState)-ev.Move:])
	}
	return b.String(), nil
}

// Reverse returns s reversed.
func Reverse(s string) string {
	n := len(s)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = s[n-1-i]
	}
	return string(out)
}

// ToRNA substitutes U for T.
func ToRNA(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'T':
			return 'U'
		case 't':
			return 'u'
		}
		return r
	}, s)
}

// ForRead orients a reconstructed sequence for output. Direct RNA reads
// pass through the pore 3'->5', so their sequence is reversed and written
// with U.
func ForRead(seq string, rna bool) string {
	if !rna {
		return seq
	}
	return ToRNA(Reverse(seq))
}
