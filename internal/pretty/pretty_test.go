package pretty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"reseg/internal/reseg"
)

func sample() []reseg.Result {
	return []reseg.Result{
		{ReadID: "read_a", NumEvents: 3, EndIndex: 3, Moves: 4, MaxMovesSeen: 2,
			Sequence: "AAAAATTTT", Accuracy: 0.5, HasAccuracy: true},
		{ReadID: "read_b", NumEvents: 2, StartIndex: 1, EndIndex: 3, Truncated: true, Moves: 1,
			Sequence: strings.Repeat("ACGT", 20), Accuracy: 1, HasAccuracy: true},
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(sample(), DefaultOptions)
	for _, want := range []string{"read_id", "max_move", "sequence", "read_a", "read_b", "AAAAATTTT", "3*", "0.5000"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, strings.Repeat("ACGT", 20), "long sequences are clipped")
	assert.Contains(t, out, strings.Repeat("ACGT", 5)+"A...")
	assert.True(t, strings.HasSuffix(out, "2 reads, 5 events, 5 bases, 1 truncated (*), mean accuracy 0.7500\n"))
}

func TestRenderTableWithoutSequence(t *testing.T) {
	opt := DefaultOptions
	opt.MaxSeq = 0
	out := RenderTable(sample(), opt)
	assert.NotContains(t, out, "sequence")
	assert.NotContains(t, out, "AAAAATTTT")
}

func TestSummaryWithoutAccuracy(t *testing.T) {
	got := Summary([]reseg.Result{{ReadID: "x", NumEvents: 7, Moves: 6}})
	assert.Equal(t, "1 reads, 7 events, 6 bases", got)
	assert.Equal(t, "0 reads, 0 events, 0 bases", Summary(nil))
}

func TestClip(t *testing.T) {
	assert.Equal(t, "ACGT", clip("ACGT", 4, "..."))
	assert.Equal(t, "A...", clip("ACGTA", 4, "..."))
	assert.Equal(t, "AC", clip("ACGTA", 2, "..."))
}
