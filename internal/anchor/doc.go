// Package anchor transfers kmer labels from a previously labeled event
// table onto a new segmentation of the same read by time overlap.
//
// Transfer walks both tables once. A cursor into the old table only moves
// forward; an old event that crosses the end of a new event is left under
// the cursor so the next new event sees it again. The move counts of old
// events are redistributed so that each base step is credited to one new
// event, subject to the MaxMove cap.
package anchor
