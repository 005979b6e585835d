// internal/events/contiguous.go
package events

// IsContiguous reports whether every event ends exactly where the next one
// starts. Tables with fewer than two events are contiguous.
func IsContiguous(t Table) bool { return CheckContiguous(t) == nil }

// CheckContiguous returns a *ContiguityError for the first gap or overlap.
// Index-unit boundaries must match exactly; time-unit boundaries are
// compared at 1e-7 s, the precision Transfer works at.
func CheckContiguous(t Table) error {
	if len(t.Events) < 2 {
		return nil
	}
	bound := func(v float64) float64 { return v }
	if t.Units == UnitsTime {
		bound = Round
	}
	prevEnd := bound(t.Events[0].End())
	for i := 1; i < len(t.Events); i++ {
		ev := t.Events[i]
		if prevEnd != bound(ev.Start) {
			return &ContiguityError{Index: i - 1, End: prevEnd, NextStart: ev.Start}
		}
		prevEnd = bound(ev.End())
	}
	return nil
}
