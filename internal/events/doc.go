// Package events defines segmentation event tables and the operations that
// only need the interval fields: unit conversion between raw-sample indexes
// and absolute time, and contiguity checks.
//
// A Table carries its units explicitly. Nothing in this package guesses the
// units of a table from the values it holds.
package events
