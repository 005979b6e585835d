package exportcli

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(args ...string) (Options, error) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return ParseArgs(fs, args)
}

func TestParse(t *testing.T) {
	o, err := parse("--db", "x.db", "--read-id", "r1")
	require.NoError(t, err)
	assert.Equal(t, FormatTSV, o.Format)
	assert.True(t, o.Header)
	assert.Empty(t, o.Analysis)

	o, err = parse("--read-id", "r1", "-f", "fastq", "--analysis", "Basecall_1D", "--no-header")
	require.NoError(t, err)
	assert.Equal(t, FormatFASTQ, o.Format)
	assert.Equal(t, "Basecall_1D", o.Analysis)
	assert.False(t, o.Header)
}

func TestParseErrors(t *testing.T) {
	_, err := parse("--db", "x.db")
	assert.Error(t, err)
	_, err = parse("--read-id", "r1", "--format", "fasta")
	assert.Error(t, err)
}
