package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reseg/internal/reseg"
)

// Compile-time check: the concrete resegmenter satisfies the minimal contract.
var _ Worker[reseg.Result] = (*reseg.Resegmenter)(nil)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("read%03d", i)
	}
	return out
}

func TestForEachReadVisitsEveryRead(t *testing.T) {
	for _, threads := range []int{0, 1, 4, 32} {
		t.Run(fmt.Sprint(threads), func(t *testing.T) {
			w := WorkerFunc[int](func(_ context.Context, id string) (int, error) {
				return len(id), nil
			})
			var seen []string
			err := ForEachRead(context.Background(), Config{Threads: threads}, ids(50), w,
				func(id string, v int, err error) error {
					require.NoError(t, err)
					assert.Equal(t, 7, v)
					seen = append(seen, id)
					return nil
				})
			require.NoError(t, err)
			sort.Strings(seen)
			assert.Equal(t, ids(50), seen)
		})
	}
}

func TestForEachReadSingleThreadKeepsOrder(t *testing.T) {
	w := WorkerFunc[string](func(_ context.Context, id string) (string, error) { return id, nil })
	var seen []string
	err := ForEachRead(context.Background(), Config{Threads: 1}, ids(10), w,
		func(id string, _ string, _ error) error {
			seen = append(seen, id)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, ids(10), seen)
}

func TestForEachReadPassesReadErrors(t *testing.T) {
	bad := errors.New("bad read")
	w := WorkerFunc[int](func(_ context.Context, id string) (int, error) {
		if id == "read003" {
			return 0, bad
		}
		return 1, nil
	})
	var failed []string
	n := 0
	err := ForEachRead(context.Background(), Config{Threads: 3}, ids(8), w,
		func(id string, v int, err error) error {
			if err != nil {
				assert.ErrorIs(t, err, bad)
				failed = append(failed, id)
				return nil
			}
			n += v
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"read003"}, failed)
	assert.Equal(t, 7, n)
}

func TestForEachReadVisitErrorStops(t *testing.T) {
	stop := errors.New("stop")
	var calls atomic.Int32
	w := WorkerFunc[int](func(ctx context.Context, _ string) (int, error) {
		calls.Add(1)
		return 0, ctx.Err()
	})
	err := ForEachRead(context.Background(), Config{Threads: 2}, ids(1000), w,
		func(string, int, error) error { return stop })
	assert.ErrorIs(t, err, stop)
	assert.Less(t, int(calls.Load()), 1000)
}

func TestForEachReadCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := WorkerFunc[int](func(ctx context.Context, _ string) (int, error) {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(time.Millisecond):
			return 1, nil
		}
	})
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()
	err := ForEachRead(ctx, Config{Threads: 2}, ids(100000), w,
		func(string, int, error) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForEachReadEmpty(t *testing.T) {
	w := WorkerFunc[int](func(context.Context, string) (int, error) {
		t.Fatal("no reads to work on")
		return 0, nil
	})
	err := ForEachRead(context.Background(), Config{Threads: 4}, nil, w,
		func(string, int, error) error { return nil })
	assert.NoError(t, err)
}
