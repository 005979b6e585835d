// Package writers turns resegmentation results into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (pretty table, JSON/JSONL/FASTQ).
//   • reseg stays domain-only; pipeline stays orchestration-only.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
