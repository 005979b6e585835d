package output

// Output formats accepted by --output.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatFASTQ = "fastq"
)

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "read_id\tnum_events\tstart_index\tend_index\ttruncated\tmoves\tmax_moves_seen\taccuracy\tsequence"
