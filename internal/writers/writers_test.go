package writers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reseg/internal/output"
	"reseg/internal/reseg"
	"reseg/pkg/api"
)

func feed(in chan<- reseg.Result, ids ...string) {
	for _, id := range ids {
		in <- reseg.Result{ReadID: id, NumEvents: 1, EndIndex: 1, Sequence: "ACGTA",
			Fastq: "@" + id + " :\nACGTA\n+\n!!!!!\n"}
	}
	close(in)
}

func TestFormatsRegistered(t *testing.T) {
	assert.Equal(t, []string{"fastq", "json", "jsonl", "text"}, Formats())
	assert.True(t, Supported(output.FormatJSONL))
	assert.False(t, Supported("fasta"))
}

func TestUnknownFormatError(t *testing.T) {
	var b bytes.Buffer
	in, done := StartResultWriter(&b, "nope-format", false, false, false, 1)
	feed(in, "r1", "r2", "r3") // must not block
	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown result format")
}

func TestResultJSONLStreamsValidV1(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartResultJSONLWriter(&buf, 2)
	feed(in, "r1", "r2")
	require.NoError(t, <-done)

	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	var n int
	for sc.Scan() {
		n++
		var v api.ResultV1
		require.NoError(t, json.Unmarshal(sc.Bytes(), &v), sc.Text())
	}
	assert.Equal(t, 2, n)
}

func TestSortedOutputs(t *testing.T) {
	cases := map[string]func(string) []string{
		output.FormatText: func(s string) []string {
			var ids []string
			for _, l := range strings.Split(strings.TrimSpace(s), "\n")[1:] {
				ids = append(ids, strings.SplitN(l, "\t", 2)[0])
			}
			return ids
		},
		output.FormatJSONL: func(s string) []string {
			var ids []string
			for _, l := range strings.Split(strings.TrimSpace(s), "\n") {
				var v api.ResultV1
				require.NoError(t, json.Unmarshal([]byte(l), &v))
				ids = append(ids, v.ReadID)
			}
			return ids
		},
		output.FormatJSON: func(s string) []string {
			var vs []api.ResultV1
			require.NoError(t, json.Unmarshal([]byte(s), &vs))
			var ids []string
			for _, v := range vs {
				ids = append(ids, v.ReadID)
			}
			return ids
		},
		output.FormatFASTQ: func(s string) []string {
			var ids []string
			for i, l := range strings.Split(strings.TrimSpace(s), "\n") {
				if i%4 == 0 {
					ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(l, "@"), " :"))
				}
			}
			return ids
		},
	}
	for format, ids := range cases {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			in, done := StartResultWriter(&buf, format, true, true, false, 4)
			feed(in, "r3", "r1", "r2")
			require.NoError(t, <-done)
			assert.Equal(t, []string{"r1", "r2", "r3"}, ids(buf.String()))
		})
	}
}

func TestTextStreamsInArrivalOrder(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartResultWriter(&buf, output.FormatText, false, false, false, 4)
	feed(in, "r3", "r1")
	require.NoError(t, <-done)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "r3\t"))
}

func TestPrettyText(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartResultWriter(&buf, output.FormatText, true, true, true, 4)
	feed(in, "r2", "r1")
	require.NoError(t, <-done)
	out := buf.String()
	assert.NotContains(t, out, output.TSVHeader)
	assert.Less(t, strings.Index(out, "r1"), strings.Index(out, "r2"))
	assert.Contains(t, out, "2 reads, 2 events, 0 bases")
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(syscall.EPIPE))
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.True(t, IsBrokenPipe(fmt.Errorf("write stdout: %w", syscall.ECONNRESET)))
	assert.True(t, IsBrokenPipe(&os.PathError{Op: "write", Path: "/dev/stdout", Err: os.ErrClosed}))
	assert.False(t, IsBrokenPipe(errors.New("disk full")))
	assert.False(t, IsBrokenPipe(nil))
}
