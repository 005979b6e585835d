// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Config controls the read pipeline.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

type outcome[T any] struct {
	id  string
	val T
	err error
}

// ForEachRead runs w over every id and calls visit once per id, always from
// the calling goroutine and in completion order. Per-read errors are passed
// to visit rather than stopping the run; the caller decides whether to skip
// or abort. A non-nil error from visit stops the run and is returned, as is
// cancellation of ctx.
func ForEachRead[T any](
	parent context.Context,
	cfg Config,
	ids []string,
	w Worker[T],
	visit func(id string, v T, err error) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	jobs := make(chan string, cfg.Threads*2)
	results := make(chan outcome[T], cfg.Threads*2)

	// Feed work
	g.Go(func() error {
		defer close(jobs)
		for _, id := range ids {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case jobs <- id:
			}
		}
		return nil
	})

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for i := 0; i < cfg.Threads; i++ {
		g.Go(func() error {
			defer wg.Done()
			for id := range jobs {
				v, err := w.Read(gctx, id)
				select {
				case results <- outcome[T]{id: id, val: v, err: err}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collector
	var verr error
	for o := range results {
		if verr != nil {
			continue
		}
		if err := visit(o.id, o.val, o.err); err != nil {
			verr = err
			cancel()
		}
	}
	gerr := g.Wait()

	if verr != nil {
		return verr
	}
	if err := parent.Err(); err != nil {
		return err
	}
	return gerr
}
