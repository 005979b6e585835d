// internal/cmdutil/run.go
package cmdutil

import (
	"context"

	"reseg/internal/pipeline"
)

// RunStream runs the shared pipeline and streams successful results via send.
// Failed reads go to skip; a non-nil error from skip aborts the run.
// It returns the number of sent results and the first error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	ids []string,
	w pipeline.Worker[T],
	skip func(id string, err error) error,
	send func(T) error,
) (int, error) {
	total := 0
	err := pipeline.ForEachRead(ctx, cfg, ids, w, func(id string, v T, rerr error) error {
		if rerr != nil {
			return skip(id, rerr)
		}
		if err := send(v); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, err
}
