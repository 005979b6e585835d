// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"reseg/internal/jsonlutil"
	"reseg/internal/output"
	"reseg/internal/reseg"
)

// StartResultJSONLWriter streams each reseg.Result as one JSON line (v1).
func StartResultJSONLWriter(out io.Writer, bufSize int) (chan<- reseg.Result, <-chan error) {
	return jsonlutil.Start[reseg.Result](out, bufSize,
		func(enc *json.Encoder, r reseg.Result) error {
			return enc.Encode(output.ToAPIResult(r))
		},
		IsBrokenPipe,
	)
}
