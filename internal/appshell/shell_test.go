package appshell

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecDefaultsToHelp(t *testing.T) {
	var got []string
	code := Exec(context.Background(), func(_ context.Context, argv []string, _, _ io.Writer) int {
		got = argv
		return 0
	}, nil, io.Discard, io.Discard)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"-h"}, got)
}

func TestExecCancelledIsNeverSuccess(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok := func(context.Context, []string, io.Writer, io.Writer) int { return 0 }
	assert.Equal(t, 130, Exec(ctx, ok, []string{"x"}, io.Discard, io.Discard))

	io3 := func(context.Context, []string, io.Writer, io.Writer) int { return 3 }
	assert.Equal(t, 3, Exec(ctx, io3, []string{"x"}, io.Discard, io.Discard))
}
