package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reseg/internal/logging"
	"reseg/internal/pipeline"
)

func TestRunStreamSkipsFailedReads(t *testing.T) {
	bad := errors.New("no events")
	w := pipeline.WorkerFunc[string](func(_ context.Context, id string) (string, error) {
		if id == "b" {
			return "", bad
		}
		return id + "!", nil
	})
	var sent, skipped []string
	n, err := RunStream[string](context.Background(), pipeline.Config{Threads: 1}, []string{"a", "b", "c"}, w,
		func(id string, err error) error {
			assert.ErrorIs(t, err, bad)
			skipped = append(skipped, id)
			return nil
		},
		func(s string) error {
			sent = append(sent, s)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a!", "c!"}, sent)
	assert.Equal(t, []string{"b"}, skipped)
}

func TestRunStreamAbortFromSkip(t *testing.T) {
	w := pipeline.WorkerFunc[int](func(context.Context, string) (int, error) {
		return 0, errors.New("boom")
	})
	_, err := RunStream[int](context.Background(), pipeline.Config{Threads: 2}, []string{"a", "b"}, w,
		func(_ string, err error) error { return err },
		func(int) error { return nil })
	assert.EqualError(t, err, "boom")
}

func TestNewLoggerInstallsDefault(t *testing.T) {
	prev := logging.Logger
	t.Cleanup(func() { logging.Logger = prev })

	var buf bytes.Buffer
	_, err := NewLogger(&buf, "info")
	require.NoError(t, err)
	logging.Info("hello", "read_id", "r1")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "reseg")

	_, err = NewLogger(&buf, "nope")
	assert.Error(t, err)
}
