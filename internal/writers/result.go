// internal/writers/result.go
package writers

import (
	"io"

	"reseg/internal/common"
	"reseg/internal/output"
	"reseg/internal/pretty"
	"reseg/internal/reseg"
)

// ResultArgs carries the presentation switches and the input stream.
type ResultArgs struct {
	Sort   bool
	Header bool
	Pretty bool
	Opt    pretty.Options
	In     <-chan reseg.Result
}

func drainResults(ch <-chan reseg.Result) []reseg.Result {
	list := make([]reseg.Result, 0, 128)
	for r := range ch {
		list = append(list, r)
	}
	return list
}

func init() {
	// JSON array
	RegisterResult(output.FormatJSON, func(w io.Writer, a ResultArgs) error {
		list := drainResults(a.In)
		if a.Sort {
			common.SortResults(list)
		}
		return output.WriteJSON(w, list)
	})

	// JSONL (stream or buffered+sort)
	RegisterResult(output.FormatJSONL, func(w io.Writer, a ResultArgs) error {
		pipe, done := StartResultJSONLWriter(w, 64)
		if a.Sort {
			list := drainResults(a.In)
			common.SortResults(list)
			for _, r := range list {
				pipe <- r
			}
		} else {
			for r := range a.In {
				pipe <- r
			}
		}
		close(pipe)
		return <-done
	})

	// FASTQ (stream or buffered+sort)
	RegisterResult(output.FormatFASTQ, func(w io.Writer, a ResultArgs) error {
		if a.Sort {
			list := drainResults(a.In)
			common.SortResults(list)
			return output.WriteFASTQ(w, list)
		}
		return output.StreamFASTQ(w, a.In)
	})

	// TEXT/TSV, or the pretty table which always buffers
	RegisterResult(output.FormatText, func(w io.Writer, a ResultArgs) error {
		if a.Pretty {
			list := drainResults(a.In)
			if a.Sort {
				common.SortResults(list)
			}
			_, err := io.WriteString(w, pretty.RenderTable(list, a.Opt))
			return err
		}
		if a.Sort {
			list := drainResults(a.In)
			common.SortResults(list)
			return output.WriteText(w, list, a.Header)
		}
		return output.StreamText(w, a.In, a.Header)
	})
}

// StartResultWriter spins up a writer goroutine for reseg.Result items.
func StartResultWriter(out io.Writer, format string, sort, header, prettyMode bool, bufSize int) (chan<- reseg.Result, <-chan error) {
	return StartResultWriterWithPrettyOptions(out, format, sort, header, prettyMode, pretty.DefaultOptions, bufSize)
}

// StartResultWriterWithPrettyOptions allows customizing the pretty renderer.
func StartResultWriterWithPrettyOptions(out io.Writer, format string, sort, header, prettyMode bool, popt pretty.Options, bufSize int) (chan<- reseg.Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan reseg.Result, bufSize)
	errCh := make(chan error, 1)
	go func() {
		errCh <- WriteResults(format, out, ResultArgs{
			Sort:   sort,
			Header: header,
			Pretty: prettyMode,
			Opt:    popt,
			In:     in,
		})
	}()
	return in, errCh
}
