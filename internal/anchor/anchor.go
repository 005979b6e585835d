// internal/anchor/anchor.go
package anchor

import (
	"math"

	"reseg/internal/events"
)

// Stats describes one Transfer call.
type Stats struct {
	StartIndex   int  // first labeled event of the input table
	EndIndex     int  // one past the last labeled event
	Truncated    bool // old coverage ran out before the new table did
	MaxMovesSeen int  // largest uncapped move computed
}

// candidate is one distinct kmer run found inside the current new event.
type candidate struct {
	kmer string
	time float64
	move int
	prob float64
}

// transfer owns the cross-event state of a single Transfer call.
type transfer struct {
	old      []events.Event
	oldIndex int

	selectedOverlap bool // previous winner was the old event crossing into this one
	checkOverlap    bool // previous scan stopped on a crossing old event
	lastLeftover    int
	homopolymer     bool

	maxMovesSeen int
	cands        []candidate
}

// Transfer labels newT from oldT and returns the labeled sub-range of newT.
// ModelState, Move and PModelState are written into newT.Events in place;
// the returned table shares storage with newT.
//
// New events starting before the first old event are dropped from the
// front. Labeling stops at the first new event for which the old table has
// nothing left to offer.
func Transfer(newT, oldT events.Table) (events.Table, Stats, error) {
	if err := validate(newT, oldT); err != nil {
		return events.Table{}, Stats{}, err
	}

	x := &transfer{old: oldT.Events, cands: make([]candidate, 0, 8)}
	st := Stats{EndIndex: len(newT.Events)}
	firstOld := oldT.Events[0].Start

	for i := range newT.Events {
		ev := &newT.Events[i]
		if ev.Start < firstOld {
			st.StartIndex = i + 1
			continue
		}
		t0 := events.Round(ev.Start)
		t1 := events.Round(t0 + ev.Length)

		crossed := x.scan(t0, t1)
		n := len(x.cands)
		if n == 0 {
			st.EndIndex = i
			st.Truncated = true
			break
		}

		best, leftover := 0, 0
		if n > 1 {
			best = x.best()
			tail := n
			if crossed {
				// the crossing candidate is settled by the next new event
				tail = n - 1
			}
			if best+1 < tail {
				leftover = sumMoves(x.cands[best+1 : tail])
			}
		}

		move := x.move(best)

		if crossed {
			leftover = max(0, leftover-1)
			x.maxMovesSeen = max(x.maxMovesSeen, leftover-1)
			x.selectedOverlap = best == n-1
		} else {
			x.selectedOverlap = false
		}

		c := x.cands[best]
		ev.ModelState = c.kmer
		ev.Move = move
		ev.PModelState = c.prob

		x.checkOverlap = crossed
		x.lastLeftover = leftover
		x.homopolymer = false
	}

	st.MaxMovesSeen = x.maxMovesSeen
	return newT.Slice(st.StartIndex, st.EndIndex), st, nil
}

// scan collects candidates for the new event [t0, t1) and reports whether
// it stopped on an old event that crosses t1.
func (x *transfer) scan(t0, t1 float64) bool {
	x.cands = x.cands[:0]
	prevKmer := ""
	numLoops := 0

	for x.oldIndex < len(x.old) {
		old := x.old[x.oldIndex]
		oldStart := events.Round(old.Start)
		if oldStart >= t1 {
			break
		}
		var oldEnd float64
		if x.oldIndex == len(x.old)-1 {
			oldEnd = events.Round(old.Start + old.Length)
		} else {
			oldEnd = events.Round(x.old[x.oldIndex+1].Start)
		}

		var index int
		if old.ModelState == prevKmer {
			index = x.find(old.ModelState)
			if events.IsHomopolymer(old.ModelState) {
				// Entering a repeat run whose head was already credited to
				// the previous new event.
				if !x.homopolymer && x.selectedOverlap && numLoops <= 1 {
					x.cands[index].move = 0
				}
				x.homopolymer = true
			} else {
				x.homopolymer = false
			}
			c := &x.cands[index]
			c.prob = max(c.prob, old.PModelState)
			c.move += old.Move
		} else {
			index = len(x.cands)
			x.cands = append(x.cands, candidate{kmer: old.ModelState, move: old.Move, prob: old.PModelState})
			x.homopolymer = false
		}
		prevKmer = old.ModelState

		from := math.Max(oldStart, t0)
		if oldEnd > t1 {
			x.cands[index].time += t1 - from
			return true
		}
		x.cands[index].time += oldEnd - from
		x.oldIndex++
		numLoops++
	}
	return false
}

// best picks the candidate with the most time inside the new event; ties go
// to the one seen first.
func (x *transfer) best() int {
	b := 0
	for i := 1; i < len(x.cands); i++ {
		if x.cands[i].time > x.cands[b].time {
			b = i
		}
	}
	return b
}

func (x *transfer) move(best int) int {
	c := x.cands
	if x.selectedOverlap && x.checkOverlap {
		if best == 0 {
			// already credited to the previous new event
			if x.homopolymer {
				return min(events.MaxMove, c[0].move)
			}
			return 0
		}
		return min(events.MaxMove, c[best].move+x.lastLeftover)
	}
	total := c[best].move + sumMoves(c[:best]) + x.lastLeftover
	x.maxMovesSeen = max(x.maxMovesSeen, total)
	return min(events.MaxMove, total)
}

func (x *transfer) find(kmer string) int {
	for i := range x.cands {
		if x.cands[i].kmer == kmer {
			return i
		}
	}
	return -1
}

func sumMoves(cs []candidate) int {
	n := 0
	for _, c := range cs {
		n += c.move
	}
	return n
}

func validate(newT, oldT events.Table) error {
	switch {
	case len(newT.Events) == 0:
		return events.Invalid("Transfer", "new", "table is empty")
	case len(oldT.Events) == 0:
		return events.Invalid("Transfer", "old", "table is empty")
	case newT.Units != oldT.Units:
		return events.Invalid("Transfer", "start", "new table is in %s units, old table in %s", newT.Units, oldT.Units)
	}
	for i, ev := range oldT.Events {
		if ev.ModelState == "" {
			return events.Invalid("Transfer", "model_state", "old event %d is unlabeled", i)
		}
		if ev.Move < 0 {
			return events.Invalid("Transfer", "move", "old event %d has negative move %d", i, ev.Move)
		}
	}
	return nil
}
