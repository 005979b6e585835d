// Package pretty renders resegmentation results as a terminal table.
package pretty

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"reseg/internal/reseg"
)

// Options control the table rendering.
type Options struct {
	// Sequences longer than this are cut and end in Ellipsis. <=0 hides the column.
	MaxSeq   int
	Ellipsis string

	Border lipgloss.Border
}

// DefaultOptions keeps the table narrow enough for an 80-column terminal.
var DefaultOptions = Options{
	MaxSeq:   24,
	Ellipsis: "...",
	Border:   lipgloss.NormalBorder(),
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// numeric columns are right-aligned
var numeric = map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}

// RenderTable lays out one row per result followed by a totals line.
func RenderTable(list []reseg.Result, opt Options) string {
	headers := []string{"read_id", "events", "start", "end", "moves", "max_move", "accuracy"}
	if opt.MaxSeq > 0 {
		headers = append(headers, "sequence")
	}

	rows := make([][]string, 0, len(list))
	for _, r := range list {
		row := []string{
			r.ReadID,
			strconv.Itoa(r.NumEvents),
			strconv.Itoa(r.StartIndex),
			endCell(r),
			strconv.Itoa(r.Moves),
			strconv.Itoa(r.MaxMovesSeen),
			accuracyCell(r),
		}
		if opt.MaxSeq > 0 {
			row = append(row, clip(r.Sequence, opt.MaxSeq, opt.Ellipsis))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(opt.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case numeric[col]:
				return numberStyle
			}
			return cellStyle
		})

	return t.String() + "\n" + Summary(list) + "\n"
}

// Summary is a one-line total over list.
func Summary(list []reseg.Result) string {
	var (
		events, moves, truncated, nacc int
		acc                            float64
	)
	for _, r := range list {
		events += r.NumEvents
		moves += r.Moves
		if r.Truncated {
			truncated++
		}
		if r.HasAccuracy {
			acc += r.Accuracy
			nacc++
		}
	}
	s := fmt.Sprintf("%d reads, %d events, %d bases", len(list), events, moves)
	if truncated > 0 {
		s += fmt.Sprintf(", %d truncated (*)", truncated)
	}
	if nacc > 0 {
		s += fmt.Sprintf(", mean accuracy %.4f", acc/float64(nacc))
	}
	return s
}

// endCell marks truncated reads with a trailing '*'.
func endCell(r reseg.Result) string {
	s := strconv.Itoa(r.EndIndex)
	if r.Truncated {
		s += "*"
	}
	return s
}

func accuracyCell(r reseg.Result) string {
	if !r.HasAccuracy {
		return "-"
	}
	return strconv.FormatFloat(r.Accuracy, 'f', 4, 64)
}

func clip(s string, n int, ellipsis string) string {
	if len(s) <= n {
		return s
	}
	if n <= len(ellipsis) {
		return s[:n]
	}
	return s[:n-len(ellipsis)] + ellipsis
}
