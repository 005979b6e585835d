// Package pipeline fans reads out to a bounded set of workers and hands
// every outcome back to a single visit callback.
//
// The only contract to implement is Worker (Read). This keeps the pipeline
// swappable and testable.
package pipeline
