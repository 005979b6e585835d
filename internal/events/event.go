// internal/events/event.go
package events

import (
	"fmt"
	"math"
	"strings"
)

// MaxMove is the largest base step a single event label can represent.
const MaxMove = 5

// timePrecision is the rounding applied to interval boundaries before they
// are compared (1e-7 s).
const timePrecision = 1e7

// Units of a table's Start/Length fields.
type Units uint8

const (
	UnitsTime  Units = iota // seconds
	UnitsIndex              // raw sample indexes
)

func (u Units) String() string {
	switch u {
	case UnitsTime:
		return "time"
	case UnitsIndex:
		return "index"
	}
	return fmt.Sprintf("units(%d)", uint8(u))
}

// ParseUnits accepts "time" or "index" (case-insensitive).
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "time", "":
		return UnitsTime, nil
	case "index":
		return UnitsIndex, nil
	}
	return 0, fmt.Errorf("unknown units %q (want time|index)", s)
}

// Event is one row of an event table.
type Event struct {
	Start       float64
	Length      float64
	Mean        float64 // pA
	Stdv        float64 // pA
	ModelState  string  // kmer label, empty when unlabeled
	Move        int
	PModelState float64
	RawStart    int64
	RawLength   int64
}

// End is Start+Length.
func (e Event) End() float64 { return e.Start + e.Length }

// Table is an ordered run of events covering a single read.
type Table struct {
	Units  Units
	Events []Event
}

func (t Table) Len() int { return len(t.Events) }

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	return Table{Units: t.Units, Events: append([]Event(nil), t.Events...)}
}

// Slice returns the sub-table [i:j). The events share storage with t.
func (t Table) Slice(i, j int) Table {
	return Table{Units: t.Units, Events: t.Events[i:j]}
}

// Round rounds a boundary value to the comparison precision used by
// contiguity checks and the label transfer.
func Round(v float64) float64 {
	return math.Round(v*timePrecision) / timePrecision
}

// IsHomopolymer reports whether every character of kmer is the same.
func IsHomopolymer(kmer string) bool {
	if kmer == "" {
		return false
	}
	for i := 1; i < len(kmer); i++ {
		if kmer[i] != kmer[0] {
			return false
		}
	}
	return true
}
