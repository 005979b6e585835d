// pkg/api/results_v1.go
package api

// ResultV1 is the stable JSON/JSONL schema for one resegmented read.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	ReadID       string   `json:"read_id"`
	NumEvents    int      `json:"num_events"`
	StartIndex   int      `json:"start_index"`
	EndIndex     int      `json:"end_index"`
	Truncated    bool     `json:"truncated"`
	Moves        int      `json:"moves"`
	MaxMovesSeen int      `json:"max_moves_seen"`
	Sequence     string   `json:"sequence"`
	Accuracy     *float64 `json:"accuracy,omitempty"`
}

// EventV1 is the stable schema for one row of an exported event table.
type EventV1 struct {
	Start       float64 `json:"start"`
	Length      float64 `json:"length"`
	Mean        float64 `json:"mean"`
	Stdv        float64 `json:"stdv"`
	ModelState  string  `json:"model_state,omitempty"`
	Move        int     `json:"move"`
	PModelState float64 `json:"p_model_state"`
	RawStart    int64   `json:"raw_start,omitempty"`
	RawLength   int64   `json:"raw_length,omitempty"`
}

// TableV1 is an exported event table with its units ("time" or "index").
type TableV1 struct {
	ReadID   string    `json:"read_id"`
	Analysis string    `json:"analysis"`
	Units    string    `json:"units"`
	Events   []EventV1 `json:"events"`
}
