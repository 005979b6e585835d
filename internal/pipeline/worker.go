// internal/pipeline/worker.go
package pipeline

import "context"

// Worker is the minimal capability the pipeline needs.
// Any resegmenter (including fakes in tests) can satisfy this.
type Worker[T any] interface {
	Read(ctx context.Context, readID string) (T, error)
}

// WorkerFunc adapts a function to Worker.
type WorkerFunc[T any] func(ctx context.Context, readID string) (T, error)

func (f WorkerFunc[T]) Read(ctx context.Context, readID string) (T, error) { return f(ctx, readID) }
