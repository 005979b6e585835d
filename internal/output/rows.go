// internal/output/rows.go
package output

import (
	"fmt"
	"strconv"

	"reseg/internal/reseg"
)

// FormatAccuracy renders an accuracy with four decimals, or "" when absent.
func FormatAccuracy(r reseg.Result) string {
	if !r.HasAccuracy {
		return ""
	}
	return strconv.FormatFloat(r.Accuracy, 'f', 4, 64)
}

// FormatRowTSV returns the TSVHeader columns (no trailing newline).
func FormatRowTSV(r reseg.Result) string {
	return fmt.Sprintf("%s\t%d\t%d\t%d\t%t\t%d\t%d\t%s\t%s",
		r.ReadID, r.NumEvents, r.StartIndex, r.EndIndex, r.Truncated,
		r.Moves, r.MaxMovesSeen, FormatAccuracy(r), r.Sequence,
	)
}
