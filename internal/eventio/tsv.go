// internal/eventio/tsv.go
package eventio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"reseg/internal/events"
)

// Columns is the canonical column order written by WriteTSV.
var Columns = []string{
	"start", "length", "mean", "stdv",
	"model_state", "move", "p_model_state",
	"raw_start", "raw_length",
}

// LabelColumns must be present in tables that carry kmer labels.
var LabelColumns = []string{"model_state", "move", "p_model_state"}

var requiredColumns = []string{"start", "length"}

// Header describes which columns a parsed table actually had.
type Header map[string]int

// Has reports whether every named column was present.
func (h Header) Has(cols ...string) bool {
	for _, c := range cols {
		if _, ok := h[c]; !ok {
			return false
		}
	}
	return true
}

// ReadTSVFile opens path and calls ReadTSV.
func ReadTSVFile(path string, units events.Units) (events.Table, Header, error) {
	fh, err := os.Open(path)
	if err != nil {
		return events.Table{}, nil, err
	}
	defer fh.Close()
	t, h, err := ReadTSV(fh, units)
	if err != nil {
		return events.Table{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, h, nil
}

// ReadTSV parses a tab- or whitespace-separated event table. The first
// non-comment line names the columns; unknown columns are ignored.
func ReadTSV(r io.Reader, units events.Units) (events.Table, Header, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	t := events.Table{Units: units}
	var hdr Header
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if hdr == nil {
			hdr = Header{}
			for i, name := range f {
				name = strings.ToLower(name)
				if _, dup := hdr[name]; dup {
					return events.Table{}, nil, events.Invalid("ReadTSV", name, "line %d: duplicate column", ln)
				}
				hdr[name] = i
			}
			for _, c := range requiredColumns {
				if !hdr.Has(c) {
					return events.Table{}, nil, events.Invalid("ReadTSV", c, "missing required column")
				}
			}
			continue
		}
		if len(f) != len(hdr) {
			return events.Table{}, nil, fmt.Errorf("line %d: %d fields, header has %d", ln, len(f), len(hdr))
		}
		ev, err := parseRow(hdr, f)
		if err != nil {
			return events.Table{}, nil, fmt.Errorf("line %d: %w", ln, err)
		}
		t.Events = append(t.Events, ev)
	}
	if err := sc.Err(); err != nil {
		return events.Table{}, nil, err
	}
	if hdr == nil {
		return events.Table{}, nil, events.Invalid("ReadTSV", "", "no header line")
	}
	return t, hdr, nil
}

// RequireLabels fails when a table that must be labeled lacks label columns.
func RequireLabels(h Header) error {
	for _, c := range LabelColumns {
		if !h.Has(c) {
			return events.Invalid("RequireLabels", c, "missing required column")
		}
	}
	return nil
}

func parseRow(h Header, f []string) (events.Event, error) {
	var ev events.Event
	var err error
	float := func(col string, dst *float64) {
		i, ok := h[col]
		if !ok || err != nil {
			return
		}
		if *dst, err = strconv.ParseFloat(f[i], 64); err != nil {
			err = fmt.Errorf("column %q: %w", col, err)
		}
	}
	integer := func(col string, dst *int64) {
		i, ok := h[col]
		if !ok || err != nil {
			return
		}
		if *dst, err = strconv.ParseInt(f[i], 10, 64); err != nil {
			err = fmt.Errorf("column %q: %w", col, err)
		}
	}

	float("start", &ev.Start)
	float("length", &ev.Length)
	float("mean", &ev.Mean)
	float("stdv", &ev.Stdv)
	float("p_model_state", &ev.PModelState)
	var move int64
	integer("move", &move)
	integer("raw_start", &ev.RawStart)
	integer("raw_length", &ev.RawLength)
	if err != nil {
		return events.Event{}, err
	}
	ev.Move = int(move)
	if i, ok := h["model_state"]; ok {
		ev.ModelState = strings.Trim(f[i], "'\"")
		if ev.ModelState == "-" || ev.ModelState == "." {
			ev.ModelState = ""
		}
	}
	if ev.Length < 0 {
		return events.Event{}, events.Invalid("ReadTSV", "length", "negative length %g", ev.Length)
	}
	return ev, nil
}

// WriteTSV writes every column in Columns order. Unlabeled events are
// written with "-" as their model_state.
func WriteTSV(w io.Writer, t events.Table, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := fmt.Fprintln(bw, strings.Join(Columns, "\t")); err != nil {
			return err
		}
	}
	for _, ev := range t.Events {
		kmer := ev.ModelState
		if kmer == "" {
			kmer = "-"
		}
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%d\t%d\n",
			formatFloat(ev.Start), formatFloat(ev.Length),
			formatFloat(ev.Mean), formatFloat(ev.Stdv),
			kmer, ev.Move, formatFloat(ev.PModelState),
			ev.RawStart, ev.RawLength,
		); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
