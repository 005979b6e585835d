// internal/events/convert.go
package events

import "math"

// ToTime converts an index-unit table to seconds:
//
//	start' = start/freq + startTime/freq
//	length' = length/freq
//
// startTime is the read's start offset in samples. The input is not modified.
func ToTime(t Table, samplingFreq, startTime float64) (Table, error) {
	if err := checkConversion("ToTime", samplingFreq, startTime); err != nil {
		return Table{}, err
	}
	if t.Units != UnitsIndex {
		return Table{}, Invalid("ToTime", "start", "table is in %s units, want index", t.Units)
	}
	out := t.Clone()
	out.Units = UnitsTime
	offset := startTime / samplingFreq
	for i := range out.Events {
		ev := &out.Events[i]
		ev.Start = ev.Start/samplingFreq + offset
		ev.Length = ev.Length / samplingFreq
	}
	return out, nil
}

// ToIndex is the inverse of ToTime; results are rounded to whole samples.
func ToIndex(t Table, samplingFreq, startTime float64) (Table, error) {
	if err := checkConversion("ToIndex", samplingFreq, startTime); err != nil {
		return Table{}, err
	}
	if t.Units != UnitsTime {
		return Table{}, Invalid("ToIndex", "start", "table is in %s units, want time", t.Units)
	}
	out := t.Clone()
	out.Units = UnitsIndex
	offset := startTime / samplingFreq
	for i := range out.Events {
		ev := &out.Events[i]
		ev.Start = math.Round((ev.Start - offset) * samplingFreq)
		ev.Length = math.Round(ev.Length * samplingFreq)
	}
	return out, nil
}

func checkConversion(op string, samplingFreq, startTime float64) error {
	if samplingFreq == 0 || math.IsNaN(samplingFreq) {
		return Invalid(op, "sampling_freq", "must be set")
	}
	if startTime == 0 || math.IsNaN(startTime) {
		return Invalid(op, "start_time", "must be set")
	}
	return nil
}
