package jsonlutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID string `json:"id"`
}

func encodeRow(enc *json.Encoder, s string) error { return enc.Encode(row{ID: s}) }

func never(error) bool { return false }

func TestStartWritesLines(t *testing.T) {
	var buf bytes.Buffer
	in, done := Start[string](&buf, 0, encodeRow, never)
	in <- "r1"
	in <- "r2"
	close(in)
	require.NoError(t, <-done)
	assert.Equal(t, "{\"id\":\"r1\"}\n{\"id\":\"r2\"}\n", buf.String())
}

type failWriter struct{ err error }

func (w failWriter) Write([]byte) (int, error) { return 0, w.err }

func TestStartDrainsAfterError(t *testing.T) {
	boom := errors.New("boom")
	failing := func(*json.Encoder, string) error { return boom }
	in, done := Start[string](failWriter{boom}, 1, failing, never)
	for i := 0; i < 10; i++ {
		in <- "x"
	}
	close(in)
	assert.ErrorIs(t, <-done, boom)
}

func TestStartSuppressesBrokenPipe(t *testing.T) {
	pipe := errors.New("broken pipe")
	in, done := Start[string](failWriter{pipe}, 1, encodeRow, func(err error) bool { return errors.Is(err, pipe) })
	in <- "r1"
	close(in)
	assert.NoError(t, <-done)
}
