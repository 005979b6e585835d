// Package reseg relabels the detected event table of a read with the kmers
// of its basecall table, stores the result next to its inputs, and derives
// the read sequence and FASTQ record from it.
package reseg
