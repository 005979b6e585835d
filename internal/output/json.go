// internal/output/json.go
package output

import (
	"io"

	"reseg/internal/events"
	"reseg/internal/jsonutil"
	"reseg/internal/reseg"
	"reseg/pkg/api"
)

// ToAPIResult converts a domain Result to the stable wire schema (v1).
func ToAPIResult(r reseg.Result) api.ResultV1 {
	v := api.ResultV1{
		ReadID:       r.ReadID,
		NumEvents:    r.NumEvents,
		StartIndex:   r.StartIndex,
		EndIndex:     r.EndIndex,
		Truncated:    r.Truncated,
		Moves:        r.Moves,
		MaxMovesSeen: r.MaxMovesSeen,
		Sequence:     r.Sequence,
	}
	if r.HasAccuracy {
		acc := r.Accuracy
		v.Accuracy = &acc
	}
	return v
}

func toAPIResults(list []reseg.Result) []api.ResultV1 {
	out := make([]api.ResultV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIResult(r))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 results (pretty-indented).
func WriteJSON(w io.Writer, list []reseg.Result) error {
	return jsonutil.EncodePretty(w, toAPIResults(list))
}

// ToAPITable converts an event table to the stable wire schema (v1).
func ToAPITable(readID, analysis string, t events.Table) api.TableV1 {
	v := api.TableV1{
		ReadID:   readID,
		Analysis: analysis,
		Units:    t.Units.String(),
		Events:   make([]api.EventV1, 0, t.Len()),
	}
	for _, ev := range t.Events {
		v.Events = append(v.Events, api.EventV1{
			Start:       ev.Start,
			Length:      ev.Length,
			Mean:        ev.Mean,
			Stdv:        ev.Stdv,
			ModelState:  ev.ModelState,
			Move:        ev.Move,
			PModelState: ev.PModelState,
			RawStart:    ev.RawStart,
			RawLength:   ev.RawLength,
		})
	}
	return v
}

// WriteTableJSON writes one event table as indented JSON.
func WriteTableJSON(w io.Writer, readID, analysis string, t events.Table) error {
	return jsonutil.EncodePretty(w, ToAPITable(readID, analysis, t))
}
